// Package cmdreporter renders scan results in the formats the CLI offers.
// Reporters are pure over the result; they never alter scan semantics.
package cmdreporter

import (
	"io"

	"github.com/apptriage/apptriage/internal/scanner"
)

type resultPrinter interface {
	// PrintResult prints the scanner.Result per the logic of the actual
	// reporter
	PrintResult(result *scanner.Result) error
}

func PrintResult(
	result *scanner.Result,
	format string,
	writer io.Writer,
	terminalWidth int,
) error {
	r, err := newResultPrinter(format, writer, terminalWidth)

	if err != nil {
		return err
	}

	return r.PrintResult(result)
}
