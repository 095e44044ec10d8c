package rules

import (
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

func newCameraRule() Rule {
	return &cameraRule{meta{
		id:         "camera-usage-description",
		name:       "Camera usage description",
		category:   CategoryPrivacy,
		severity:   SeverityCritical,
		confidence: ConfidenceHigh,
		guideline:  "5.1.1",
		summary:    "Apps that access the camera must declare NSCameraUsageDescription.",
		fix:        "Add NSCameraUsageDescription to the Info.plist (or an INFOPLIST_KEY_NSCameraUsageDescription build setting) explaining why the app captures photos or video.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nscamerausagedescription",
	}}
}

type cameraRule struct{ meta }

func (r *cameraRule) Evaluate(ctx *scancontext.Context) []Finding {
	usage := ctx.Usage()

	linked := ctx.HasFramework("AVFoundation") || usage.Imports("AVFoundation")
	captureSeen := usage.Has(sourcescan.CapabilityCamera)
	playbackOnly := usage.Has(sourcescan.CapabilityPlayback) && !captureSeen

	sig := usageKeySignal{
		key:       "NSCameraUsageDescription",
		triggered: linked || captureSeen,
		why:       "The project uses the camera capture pipeline, and the app will crash when it first accesses the camera without this key.",
	}

	switch {
	case captureSeen:
		// Specific capture API in source confirms the framework-level guess.
	case usage.FilesScanned() == 0:
		sig.ambiguous = true
		sig.rationale = "AVFoundation is linked but no source files were available to confirm capture use, so severity and confidence are reduced."
		sig.why = "AVFoundation is linked, which commonly indicates camera capture."
	case playbackOnly:
		// Playback classes only: the umbrella framework is in use for
		// audio/video playback, not capture.
		sig.suppressed = true
	default:
		sig.ambiguous = true
		sig.rationale = "AVFoundation is linked but no capture-specific API was found in source, so severity and confidence are reduced."
		sig.why = "AVFoundation is linked, which commonly indicates camera capture."
	}

	return evaluateUsageKey(r.meta, ctx, sig)
}
