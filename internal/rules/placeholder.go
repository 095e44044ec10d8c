package rules

import (
	"strings"

	"github.com/apptriage/apptriage/internal/plist"
)

// descriptionState classifies a usage-description value. The states are
// mutually exclusive by construction: a placeholder string is never also
// reported as empty, and an empty string is never also reported as missing.
type descriptionState int

const (
	descMissing descriptionState = iota
	descEmpty
	descPlaceholder
	descOK
)

// fillerTokens are fragments App Review rejects as non-descriptions.
var fillerTokens = []string{
	"todo",
	"fixme",
	"placeholder",
	"lorem ipsum",
	"test string",
	"your description",
	"description here",
	"xxx",
}

const minDescriptionLength = 10

// classifyDescription applies the shared presence / emptiness / placeholder
// ladder. A present value of a non-string type counts as empty: App Review
// sees a blank where the explanation should be either way.
func classifyDescription(v plist.Value) descriptionState {
	if !v.Present() {
		return descMissing
	}

	s, ok := v.AsString()
	if !ok {
		return descEmpty
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return descEmpty
	}

	if looksLikePlaceholder(trimmed) {
		return descPlaceholder
	}

	return descOK
}

func looksLikePlaceholder(s string) bool {
	if len(s) < minDescriptionLength {
		return true
	}

	lower := strings.ToLower(s)
	for _, token := range fillerTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}

	return false
}
