package rules

import (
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

func newBackgroundModesRule() Rule {
	return &backgroundModesRule{meta{
		id:         "background-modes-justification",
		name:       "Background modes justification",
		category:   CategoryCapability,
		severity:   SeverityMedium,
		confidence: ConfidenceMedium,
		guideline:  "2.5.4",
		summary:    "Declared background modes must be backed by matching capability use.",
		fix:        "Remove background modes the app does not actually use, or add the usage-description keys the declared modes require.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/uibackgroundmodes",
	}}
}

type backgroundModesRule struct{ meta }

// Evaluate checks that declared UIBackgroundModes are justified. App Review
// rejects apps that declare background execution they cannot demonstrate.
func (r *backgroundModesRule) Evaluate(ctx *scancontext.Context) []Finding {
	if ctx.IsExtension() || ctx.IsFrameworkTarget() {
		return nil
	}

	modes, ok := ctx.PlistValue("UIBackgroundModes").AsArray()
	if !ok {
		return nil
	}

	var findings []Finding

	for _, mode := range modes {
		name, ok := mode.AsString()
		if !ok {
			continue
		}

		switch name {
		case "location":
			if !ctx.PlistValue(locationWhenInUseKey).Present() && !ctx.PlistValue(locationAlwaysKey).Present() {
				findings = append(findings, r.finding(
					"Background location without usage description",
					"UIBackgroundModes declares location but no location usage description is present, so the background mode cannot be demonstrated to App Review.",
					location(ctx),
				))
			}
		case "audio":
			usage := ctx.Usage()
			usesAudio := usage.Has(sourcescan.CapabilityPlayback) ||
				usage.Has(sourcescan.CapabilityMicrophone) ||
				usage.Has(sourcescan.CapabilityCamera)
			if usage.FilesScanned() > 0 && !usesAudio {
				findings = append(findings, r.finding(
					"Background audio without audio API use",
					"UIBackgroundModes declares audio but no playback or recording API was found in source. Apps declaring unused background audio are rejected under guideline 2.5.4.",
					location(ctx),
				))
			}
		}
	}

	return findings
}
