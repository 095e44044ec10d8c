package rules

import "github.com/apptriage/apptriage/internal/scancontext"

// usageKeySignal is the per-evaluation input to the shared usage-description
// policy, derived by each rule from the scan context.
type usageKeySignal struct {
	// key is the Info.plist key the rule guards.
	key string

	// triggered means the guarded capability appears to be in use at all.
	// Without a trigger, a missing key is not a finding.
	triggered bool

	// ambiguous means the trigger is an umbrella signal (framework linked
	// but no specific API observed). Severity and confidence are lowered
	// rather than the finding suppressed outright.
	ambiguous bool

	// suppressed means counter-evidence shows the capability is not in use
	// (e.g. playback-only API against the capture framework); no missing-key
	// finding is emitted at all.
	suppressed bool

	// rationale explains a downgrade and is appended to the description.
	rationale string

	// why describes the evidence behind the trigger for the finding text.
	why string
}

// evaluateUsageKey applies the shared policy used by every
// usage-description rule: report present-but-empty and placeholder values
// unconditionally, and report a missing key only when the capability is
// triggered and not suppressed, downgrading when the trigger is ambiguous.
func evaluateUsageKey(m meta, ctx *scancontext.Context, sig usageKeySignal) []Finding {
	value := ctx.PlistValue(sig.key)

	switch classifyDescription(value) {
	case descOK:
		return nil
	case descEmpty:
		return []Finding{m.finding(
			"Empty "+sig.key,
			sig.key+" is present but blank. App Review rejects apps whose permission prompts carry no explanation.",
			location(ctx),
		)}
	case descPlaceholder:
		return []Finding{m.finding(
			"Placeholder "+sig.key,
			sig.key+" looks like placeholder text. App Review rejects filler strings; describe the actual reason the app needs this access.",
			location(ctx),
		)}
	case descMissing:
	}

	if sig.suppressed || !sig.triggered {
		return nil
	}

	severity := m.severity
	confidence := m.confidence
	description := sig.key + " is missing. " + sig.why

	if sig.ambiguous {
		severity = severity.downgraded()
		confidence = confidence.downgraded()
		description += " " + sig.rationale
	}

	return []Finding{m.findingAt(
		severity,
		confidence,
		"Missing "+sig.key,
		description,
		location(ctx),
	)}
}
