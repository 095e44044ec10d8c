package cmdreporter

import (
	"fmt"
	"io"

	"github.com/apptriage/apptriage/internal/rules"
	"github.com/apptriage/apptriage/internal/scanner"
	"github.com/apptriage/apptriage/internal/version"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

type sarifReporter struct {
	writer io.Writer
}

// severityToSARIFLevel maps finding severities onto the three SARIF levels.
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityCritical, rules.SeverityHigh:
		return "error"
	case rules.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

func (r *sarifReporter) PrintResult(result *scanner.Result) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("apptriage", "https://github.com/apptriage/apptriage")
	run.Tool.Driver.WithVersion(version.Version)

	seenRules := map[string]bool{}

	for _, finding := range result.Findings {
		if !seenRules[finding.RuleID] {
			seenRules[finding.RuleID] = true

			helpText := finding.FixGuidance
			if finding.DocumentationURL != "" {
				helpText += "\n\n" + finding.DocumentationURL
			}

			run.AddRule(finding.RuleID).
				WithName(finding.RuleID).
				WithShortDescription(sarif.NewMultiformatMessageString(finding.Title)).
				WithFullDescription(sarif.NewMultiformatMessageString(finding.Description)).
				WithTextHelp(helpText).
				WithMarkdownHelp(helpText)
		}

		artifactPath := finding.Location
		if artifactPath == "" {
			artifactPath = result.ProjectPath
		}
		run.AddDistinctArtifact(artifactPath)

		run.CreateResultForRule(finding.RuleID).
			WithLevel(severityToSARIFLevel(finding.Severity)).
			WithMessage(sarif.NewTextMessage(
				fmt.Sprintf("%s (App Store guideline %s, confidence %s)",
					finding.Description, finding.Guideline, finding.Confidence))).
			AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(artifactPath)),
				))
	}

	report.AddRun(run)

	if err := report.PrettyWrite(r.writer); err != nil {
		return err
	}
	fmt.Fprintln(r.writer)

	return nil
}
