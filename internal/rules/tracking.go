package rules

import (
	"strings"

	"github.com/apptriage/apptriage/internal/scancontext"
)

// trackingSDKs are dependency names that perform device-level tracking or
// attribution and therefore require the App Tracking Transparency prompt.
// Names are matched at base and subspec granularity.
var trackingSDKs = []string{
	"FBSDKCoreKit",
	"FacebookCore",
	"FBAudienceNetwork",
	"FirebaseAnalytics",
	"Firebase/Analytics",
	"GoogleAnalytics",
	"Google-Mobile-Ads-SDK",
	"AppsFlyerFramework",
	"Adjust",
	"Branch",
	"Amplitude",
	"Mixpanel",
	"Singular-SDK",
	"Kochava",
}

func newTrackingRule() Rule {
	return &trackingRule{meta{
		id:         "tracking-usage-description",
		name:       "Tracking usage description",
		category:   CategoryPrivacy,
		severity:   SeverityHigh,
		confidence: ConfidenceHigh,
		guideline:  "5.1.2",
		summary:    "Apps embedding tracking or attribution SDKs must declare NSUserTrackingUsageDescription.",
		fix:        "Add NSUserTrackingUsageDescription to the Info.plist and call ATTrackingManager.requestTrackingAuthorization before any tracking occurs.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nsusertrackingusagedescription",
	}}
}

type trackingRule struct{ meta }

func (r *trackingRule) Evaluate(ctx *scancontext.Context) []Finding {
	var present []string
	for _, sdk := range trackingSDKs {
		if ctx.HasDependency(sdk) {
			present = append(present, sdk)
		}
	}

	attImported := ctx.Usage().Imports("AppTrackingTransparency")

	return evaluateUsageKey(r.meta, ctx, usageKeySignal{
		key:       "NSUserTrackingUsageDescription",
		triggered: len(present) > 0 || attImported,
		why:       describeTrackingTrigger(present, attImported),
	})
}

func describeTrackingTrigger(present []string, attImported bool) string {
	if len(present) > 0 {
		return "The project depends on tracking SDKs (" + strings.Join(present, ", ") + "), and since iOS 14.5 tracking without this key and the ATT prompt is rejected."
	}

	if attImported {
		return "The project imports AppTrackingTransparency, and requesting tracking authorization without this key silently returns denied."
	}

	return ""
}
