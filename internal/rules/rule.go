// Package rules holds the rule engine: independent, side-effect-free
// evaluators that inspect a scan context and report findings.
//
// A rule must be total over any valid context: it never panics and never
// errors, and absence of a signal is a valid evaluation outcome (no
// findings).
package rules

import "github.com/apptriage/apptriage/internal/scancontext"

// Category groups rules for listing and filtering.
type Category string

const (
	CategoryPrivacy    Category = "privacy"
	CategoryCapability Category = "capability"
	CategoryCompliance Category = "compliance"
	CategoryMetadata   Category = "metadata"
)

// Rule is one rejection-pattern evaluator. Implementations are stateless
// values; Evaluate reads the shared context and returns zero or more
// findings.
type Rule interface {
	ID() string
	Name() string
	Category() Category
	Severity() Severity
	Confidence() Confidence
	Guideline() string
	Summary() string
	FixGuidance() string
	DocumentationURL() string

	Evaluate(ctx *scancontext.Context) []Finding
}

// Finding is one reported issue. Immutable once created.
type Finding struct {
	RuleID           string     `json:"rule_id"`
	Severity         Severity   `json:"severity"`
	Confidence       Confidence `json:"confidence"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location,omitempty"`
	Guideline        string     `json:"guideline"`
	FixGuidance      string     `json:"fix_guidance"`
	DocumentationURL string     `json:"documentation_url,omitempty"`
}

// meta carries the static metadata shared by every rule implementation and
// provides the Rule accessors, so each rule file only defines Evaluate.
type meta struct {
	id         string
	name       string
	category   Category
	severity   Severity
	confidence Confidence
	guideline  string
	summary    string
	fix        string
	docURL     string
}

func (m meta) ID() string               { return m.id }
func (m meta) Name() string             { return m.name }
func (m meta) Category() Category       { return m.category }
func (m meta) Severity() Severity       { return m.severity }
func (m meta) Confidence() Confidence   { return m.confidence }
func (m meta) Guideline() string        { return m.guideline }
func (m meta) Summary() string          { return m.summary }
func (m meta) FixGuidance() string      { return m.fix }
func (m meta) DocumentationURL() string { return m.docURL }

// finding builds a Finding at the rule's default severity and confidence.
func (m meta) finding(title, description, location string) Finding {
	return m.findingAt(m.severity, m.confidence, title, description, location)
}

func (m meta) findingAt(severity Severity, confidence Confidence, title, description, location string) Finding {
	return Finding{
		RuleID:           m.id,
		Severity:         severity,
		Confidence:       confidence,
		Title:            title,
		Description:      description,
		Location:         location,
		Guideline:        m.guideline,
		FixGuidance:      m.fix,
		DocumentationURL: m.docURL,
	}
}

// location picks the most useful file to point a finding at.
func location(ctx *scancontext.Context) string {
	if ctx.InfoPlistPath() != "" {
		return ctx.InfoPlistPath()
	}

	return ctx.ProjectPath()
}
