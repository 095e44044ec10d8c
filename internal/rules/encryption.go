package rules

import "github.com/apptriage/apptriage/internal/scancontext"

func newEncryptionRule() Rule {
	return &encryptionRule{meta{
		id:         "encryption-compliance",
		name:       "Export compliance declaration",
		category:   CategoryCompliance,
		severity:   SeverityMedium,
		confidence: ConfidenceHigh,
		guideline:  "2.1",
		summary:    "Apps should declare ITSAppUsesNonExemptEncryption to skip the export compliance questionnaire.",
		fix:        "Add ITSAppUsesNonExemptEncryption (usually false, for apps using only standard HTTPS) to the Info.plist.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/itsappusesnonexemptencryption",
	}}
}

type encryptionRule struct{ meta }

// Evaluate reports a missing export-compliance flag. Any declared value,
// true or false, satisfies the check; only app targets are held to it.
func (r *encryptionRule) Evaluate(ctx *scancontext.Context) []Finding {
	if ctx.IsExtension() || ctx.IsFrameworkTarget() {
		return nil
	}

	if ctx.PlistValue("ITSAppUsesNonExemptEncryption").Present() {
		return nil
	}

	return []Finding{r.finding(
		"Missing ITSAppUsesNonExemptEncryption",
		"ITSAppUsesNonExemptEncryption is not declared, so every upload will stall on the export compliance questionnaire and a wrong interactive answer can block release.",
		location(ctx),
	)}
}
