package rules

import (
	"fmt"
	"strings"
)

// Severity is how serious a finding would be if true.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Confidence is how certain the engine is that a finding is a true
// positive, independent of severity.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Severities lists the valid severity names in ascending order.
func Severities() []string {
	return []string{"low", "medium", "high", "critical"}
}

// ParseSeverity converts a flag value into a Severity.
func ParseSeverity(text string) (Severity, error) {
	s := Severity(strings.ToLower(text))
	if _, ok := severityRank[s]; !ok {
		return "", fmt.Errorf("invalid severity \"%s\" - must be one of: %s", text, strings.Join(Severities(), ", "))
	}

	return s, nil
}

// AtLeast reports whether s meets or exceeds threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return severityRank[s] >= severityRank[threshold]
}

// downgraded returns the reduced severity used when a rule's triggering
// signal is ambiguous: anything above medium drops to medium, lower
// severities are left alone.
func (s Severity) downgraded() Severity {
	if severityRank[s] > severityRank[SeverityMedium] {
		return SeverityMedium
	}

	return s
}

func (c Confidence) downgraded() Confidence {
	if c == ConfidenceHigh {
		return ConfidenceMedium
	}

	return ConfidenceLow
}
