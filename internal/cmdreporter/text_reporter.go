package cmdreporter

import (
	"fmt"
	"io"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/scanner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type textReporter struct {
	writer io.Writer
	// 0 indicates not a terminal output
	terminalWidth int
}

func (r *textReporter) PrintResult(result *scanner.Result) error {
	if len(result.Findings) == 0 && !cmdlogger.HasErrored() {
		fmt.Fprintf(r.writer, "No issues found in %s (%d rules, %d dependencies, %d source files)\n",
			result.ProjectPath, len(result.RulesRun), len(result.Dependencies), result.SourceFilesScanned)

		return nil
	}

	if r.terminalWidth <= 0 {
		text.DisableColors()
	}

	outputTable := table.NewWriter()
	outputTable.SetOutputMirror(r.writer)
	if r.terminalWidth > 0 {
		outputTable.SetStyle(table.StyleRounded)
		outputTable.SetAllowedRowLength(r.terminalWidth)
	}

	outputTable.AppendHeader(table.Row{"Rule", "Severity", "Confidence", "Title", "Guideline"})
	for _, finding := range result.Findings {
		outputTable.AppendRow(table.Row{
			finding.RuleID,
			string(finding.Severity),
			string(finding.Confidence),
			finding.Title,
			finding.Guideline,
		})
	}
	outputTable.Render()

	for _, finding := range result.Findings {
		fmt.Fprintf(r.writer, "\n%s: %s\n", finding.RuleID, finding.Title)
		fmt.Fprintf(r.writer, "  %s\n", finding.Description)
		if finding.Location != "" {
			fmt.Fprintf(r.writer, "  Location: %s\n", finding.Location)
		}
		fmt.Fprintf(r.writer, "  Fix: %s\n", finding.FixGuidance)
		if finding.DocumentationURL != "" {
			fmt.Fprintf(r.writer, "  See: %s\n", finding.DocumentationURL)
		}
	}

	fmt.Fprintf(r.writer, "\n%d issue(s) found in %s\n", len(result.Findings), result.ProjectPath)

	return nil
}
