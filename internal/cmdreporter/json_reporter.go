package cmdreporter

import (
	"encoding/json"
	"io"

	"github.com/apptriage/apptriage/internal/scanner"
)

type jsonReporter struct {
	writer io.Writer
}

func (r *jsonReporter) PrintResult(result *scanner.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
