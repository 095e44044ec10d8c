package rules

import "github.com/apptriage/apptriage/internal/scancontext"

func newOrientationRule() Rule {
	return &orientationRule{meta{
		id:         "orientation-support",
		name:       "Interface orientation support",
		category:   CategoryMetadata,
		severity:   SeverityLow,
		confidence: ConfidenceMedium,
		guideline:  "4.0",
		summary:    "Apps should declare their supported interface orientations.",
		fix:        "Declare UISupportedInterfaceOrientations in the Info.plist (or the target's General settings) covering every orientation the UI handles.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/uisupportedinterfaceorientations",
	}}
}

type orientationRule struct{ meta }

func (r *orientationRule) Evaluate(ctx *scancontext.Context) []Finding {
	if ctx.IsExtension() || ctx.IsFrameworkTarget() {
		return nil
	}

	v := ctx.PlistValue("UISupportedInterfaceOrientations")

	if !v.Present() {
		return []Finding{r.finding(
			"Missing supported orientations",
			"UISupportedInterfaceOrientations is not declared, leaving orientation behavior to defaults that differ between device families.",
			location(ctx),
		)}
	}

	if arr, ok := v.AsArray(); ok && len(arr) == 0 {
		return []Finding{r.finding(
			"Empty supported orientations",
			"UISupportedInterfaceOrientations is declared but lists no orientations, so the app cannot display in any orientation.",
			location(ctx),
		)}
	}

	return nil
}
