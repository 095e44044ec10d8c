package rules

import "github.com/apptriage/apptriage/internal/scancontext"

func newLaunchScreenRule() Rule {
	return &launchScreenRule{meta{
		id:         "launch-screen",
		name:       "Launch screen configuration",
		category:   CategoryMetadata,
		severity:   SeverityMedium,
		confidence: ConfidenceHigh,
		guideline:  "2.3.8",
		summary:    "iPhone apps must provide a launch screen to run at native resolution.",
		fix:        "Add a UILaunchScreen dictionary (or a UILaunchStoryboardName storyboard) so the app launches at full device resolution.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/uilaunchscreen",
	}}
}

type launchScreenRule struct{ meta }

func (r *launchScreenRule) Evaluate(ctx *scancontext.Context) []Finding {
	if ctx.IsExtension() || ctx.IsFrameworkTarget() {
		return nil
	}

	// Modern templates declare the launch screen through build settings;
	// PlistValue already folds INFOPLIST_KEY_ equivalents in, and the
	// _Generation key is how Xcode spells an empty generated launch screen.
	if ctx.PlistValue("UILaunchStoryboardName").Present() ||
		ctx.PlistValue("UILaunchScreen").Present() ||
		ctx.PlistValue("UILaunchScreen_Generation").Present() {
		return nil
	}

	return []Finding{r.finding(
		"Missing launch screen",
		"Neither UILaunchScreen nor UILaunchStoryboardName is configured. Without a launch screen the app runs letterboxed in compatibility mode, which App Review treats as an incomplete app.",
		location(ctx),
	)}
}
