package cmdreporter

import (
	"fmt"
	"io"

	"github.com/apptriage/apptriage/internal/rules"
	"github.com/apptriage/apptriage/internal/scanner"
)

// xcodeReporter emits one diagnostic line per finding in the
// `path: level: message` shape Xcode picks up from build-phase script
// output and surfaces in the issue navigator.
type xcodeReporter struct {
	writer io.Writer
}

func (r *xcodeReporter) PrintResult(result *scanner.Result) error {
	for _, finding := range result.Findings {
		level := "warning"
		if finding.Severity.AtLeast(rules.SeverityHigh) {
			level = "error"
		}

		path := finding.Location
		if path == "" {
			path = result.ProjectPath
		}

		fmt.Fprintf(r.writer, "%s: %s: [%s] %s. %s\n",
			path, level, finding.RuleID, finding.Title, finding.FixGuidance)
	}

	return nil
}
