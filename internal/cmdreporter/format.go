package cmdreporter

import (
	"fmt"
	"io"
)

var format = []string{"text", "json", "sarif", "xcode"}

func Format() []string {
	return format
}

func newResultPrinter(format string, writer io.Writer, terminalWidth int) (resultPrinter, error) {
	switch format {
	case "text":
		return &textReporter{writer, terminalWidth}, nil
	case "json":
		return &jsonReporter{writer}, nil
	case "sarif":
		return &sarifReporter{writer}, nil
	case "xcode":
		return &xcodeReporter{writer}, nil
	default:
		return nil, fmt.Errorf("%v is not a valid format", format)
	}
}
