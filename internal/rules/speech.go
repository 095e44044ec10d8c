package rules

import (
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

func newSpeechRule() Rule {
	return &speechRule{meta{
		id:         "speech-recognition-usage-description",
		name:       "Speech recognition usage description",
		category:   CategoryPrivacy,
		severity:   SeverityHigh,
		confidence: ConfidenceHigh,
		guideline:  "5.1.1",
		summary:    "Apps that use speech recognition must declare NSSpeechRecognitionUsageDescription.",
		fix:        "Add NSSpeechRecognitionUsageDescription to the Info.plist explaining why spoken audio is sent for recognition.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nsspeechrecognitionusagedescription",
	}}
}

type speechRule struct{ meta }

func (r *speechRule) Evaluate(ctx *scancontext.Context) []Finding {
	usage := ctx.Usage()

	linked := ctx.HasFramework("Speech") || usage.Imports("Speech")
	apiSeen := usage.Has(sourcescan.CapabilitySpeech)

	sig := usageKeySignal{
		key:       "NSSpeechRecognitionUsageDescription",
		triggered: linked || apiSeen,
		why:       "The project uses the Speech framework, which requires a usage description before requesting authorization.",
	}

	if !apiSeen {
		sig.ambiguous = true
		sig.rationale = "The Speech framework is linked but no recognizer API was found in source, so severity and confidence are reduced."
	}

	return evaluateUsageKey(r.meta, ctx, sig)
}
