package rules

import "github.com/apptriage/apptriage/internal/scancontext"

const (
	locationWhenInUseKey = "NSLocationWhenInUseUsageDescription"
	locationAlwaysKey    = "NSLocationAlwaysAndWhenInUseUsageDescription"
)

func newLocationRule() Rule {
	return &locationRule{meta{
		id:         "location-usage-description",
		name:       "Location usage description",
		category:   CategoryPrivacy,
		severity:   SeverityHigh,
		confidence: ConfidenceHigh,
		guideline:  "5.1.1",
		summary:    "Apps that use location services must declare a location usage description.",
		fix:        "Add NSLocationWhenInUseUsageDescription (and NSLocationAlwaysAndWhenInUseUsageDescription if background location is used) to the Info.plist.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nslocationwheninuseusagedescription",
	}}
}

type locationRule struct{ meta }

// Evaluate checks both location keys: present keys run the emptiness and
// placeholder ladder individually, and the missing finding fires only when
// neither key exists while CoreLocation is in use. CoreLocation is not an
// umbrella framework, so linkage alone keeps default severity.
func (r *locationRule) Evaluate(ctx *scancontext.Context) []Finding {
	linked := ctx.HasFramework("CoreLocation") || ctx.Usage().Imports("CoreLocation")

	whenInUse := ctx.PlistValue(locationWhenInUseKey)
	always := ctx.PlistValue(locationAlwaysKey)

	var findings []Finding

	if whenInUse.Present() || always.Present() {
		if whenInUse.Present() {
			findings = append(findings, evaluateUsageKey(r.meta, ctx, usageKeySignal{key: locationWhenInUseKey})...)
		}
		if always.Present() {
			findings = append(findings, evaluateUsageKey(r.meta, ctx, usageKeySignal{key: locationAlwaysKey})...)
		}

		return findings
	}

	return evaluateUsageKey(r.meta, ctx, usageKeySignal{
		key:       locationWhenInUseKey,
		triggered: linked,
		why:       "CoreLocation is linked, and requesting location without a usage description is rejected.",
	})
}
