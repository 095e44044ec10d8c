package rules

import (
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

func newMicrophoneRule() Rule {
	return &microphoneRule{meta{
		id:         "microphone-usage-description",
		name:       "Microphone usage description",
		category:   CategoryPrivacy,
		severity:   SeverityCritical,
		confidence: ConfidenceHigh,
		guideline:  "5.1.1",
		summary:    "Apps that record audio must declare NSMicrophoneUsageDescription.",
		fix:        "Add NSMicrophoneUsageDescription to the Info.plist explaining why the app records audio.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nsmicrophoneusagedescription",
	}}
}

type microphoneRule struct{ meta }

func (r *microphoneRule) Evaluate(ctx *scancontext.Context) []Finding {
	usage := ctx.Usage()

	linked := ctx.HasFramework("AVFoundation") || usage.Imports("AVFoundation")
	recordingSeen := usage.Has(sourcescan.CapabilityMicrophone)
	playbackOnly := usage.Has(sourcescan.CapabilityPlayback) &&
		!recordingSeen && !usage.Has(sourcescan.CapabilityCamera)

	sig := usageKeySignal{
		key:       "NSMicrophoneUsageDescription",
		triggered: linked || recordingSeen,
		why:       "The project uses audio recording APIs, and microphone access without this key is a rejection and a runtime crash.",
	}

	switch {
	case recordingSeen:
	case usage.FilesScanned() == 0:
		sig.ambiguous = true
		sig.rationale = "AVFoundation is linked but no source files were available to confirm recording use, so severity and confidence are reduced."
		sig.why = "AVFoundation is linked, which may indicate audio recording."
	case playbackOnly:
		sig.suppressed = true
	default:
		sig.ambiguous = true
		sig.rationale = "AVFoundation is linked but no recording-specific API was found in source, so severity and confidence are reduced."
		sig.why = "AVFoundation is linked, which may indicate audio recording."
	}

	return evaluateUsageKey(r.meta, ctx, sig)
}
