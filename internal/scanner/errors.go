package scanner

import (
	"fmt"
	"strings"
)

// InvalidRulesError is returned when an include list names rule IDs that
// are not registered. Unknown IDs are a hard failure rather than being
// silently dropped: the silent behavior once let a mistyped ID disable an
// entire rule category without anyone noticing.
type InvalidRulesError struct {
	UnknownIDs   []string
	AvailableIDs []string
}

func (e *InvalidRulesError) Error() string {
	return fmt.Sprintf(
		"unknown rule IDs: %s (available rules: %s)",
		strings.Join(e.UnknownIDs, ", "),
		strings.Join(e.AvailableIDs, ", "),
	)
}

// NoRulesError is returned when the include/exclude combination leaves
// nothing to run.
type NoRulesError struct{}

func (e *NoRulesError) Error() string {
	return "rule selection excludes every registered rule; nothing to scan with"
}
