package rules

import (
	"strings"

	"github.com/apptriage/apptriage/internal/scancontext"
)

const appleSignInEntitlement = "com.apple.developer.applesignin"

// definitiveLoginSDKs are SDKs whose presence means the app offers a
// third-party social login flow.
var definitiveLoginSDKs = []string{
	"FBSDKLoginKit",
	"FacebookLogin",
	"GoogleSignIn",
	"LineSDKSwift",
	"VK-ios-sdk",
	"TwitterKit",
}

// ambiguousLoginSDKs may or may not imply third-party social login: an
// auth SDK can be used purely for email/password or enterprise SSO.
var ambiguousLoginSDKs = []string{
	"FirebaseAuth",
	"Firebase/Auth",
	"Auth0",
	"AWSMobileClient",
	"MSAL",
	"OktaOidc",
}

func newSignInWithAppleRule() Rule {
	return &signInWithAppleRule{meta{
		id:         "sign-in-with-apple",
		name:       "Sign in with Apple",
		category:   CategoryCapability,
		severity:   SeverityHigh,
		confidence: ConfidenceHigh,
		guideline:  "4.8",
		summary:    "Apps offering third-party login must also offer Sign in with Apple.",
		fix:        "Add the Sign in with Apple capability in Signing & Capabilities and present it as an equivalent login option.",
		docURL:     "https://developer.apple.com/design/human-interface-guidelines/sign-in-with-apple",
	}}
}

type signInWithAppleRule struct{ meta }

// Evaluate flags third-party login SDKs when the Sign in with Apple
// entitlement is absent. A definitive SDK always wins over an ambiguous
// one and restores full severity; the ambiguity downgrade applies only
// when no definitive SDK matched.
func (r *signInWithAppleRule) Evaluate(ctx *scancontext.Context) []Finding {
	if ctx.EntitlementValue(appleSignInEntitlement).Present() {
		return nil
	}

	definitive := matchDependencies(ctx, definitiveLoginSDKs)
	ambiguous := matchDependencies(ctx, ambiguousLoginSDKs)

	if len(definitive) > 0 {
		return []Finding{r.finding(
			"Third-party login without Sign in with Apple",
			"The project depends on third-party login SDKs ("+strings.Join(definitive, ", ")+") but the Sign in with Apple entitlement is not configured. Guideline 4.8 requires an equivalent Apple login option.",
			entitlementsLocation(ctx),
		)}
	}

	if len(ambiguous) > 0 {
		return []Finding{r.findingAt(
			r.severity.downgraded(),
			r.confidence.downgraded(),
			"Possible third-party login without Sign in with Apple",
			"The project depends on authentication SDKs ("+strings.Join(ambiguous, ", ")+") that may provide third-party social login, and the Sign in with Apple entitlement is not configured. Severity and confidence are reduced because these SDKs are also used for first-party authentication.",
			entitlementsLocation(ctx),
		)}
	}

	return nil
}

func matchDependencies(ctx *scancontext.Context, names []string) []string {
	var matched []string
	for _, name := range names {
		if ctx.HasDependency(name) {
			matched = append(matched, name)
		}
	}

	return matched
}

func entitlementsLocation(ctx *scancontext.Context) string {
	if ctx.EntitlementsPath() != "" {
		return ctx.EntitlementsPath()
	}

	return location(ctx)
}
