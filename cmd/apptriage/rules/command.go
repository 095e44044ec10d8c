// Package rules implements the `rules` command for apptriage: listing the
// registered rules and explaining a single one.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apptriage/apptriage/internal/rules"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func Command(stdout, _ io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "rules",
		Usage:       "lists the registered rules, or explains one in detail.",
		Description: "lists the registered rules, or explains one in detail.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "explain",
				Usage: "print the full metadata for the given rule ID",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "sets the output format; value can be: text, json",
				Value:   "text",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			registry := rules.NewRegistry()

			if id := c.String("explain"); id != "" {
				return explain(stdout, registry, id, c.String("format"))
			}

			return list(stdout, registry, c.String("format"))
		},
	}
}

// ruleInfo is the serializable view of a rule's metadata.
type ruleInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Severity         string `json:"severity"`
	Confidence       string `json:"confidence"`
	Guideline        string `json:"guideline"`
	Summary          string `json:"summary"`
	FixGuidance      string `json:"fix_guidance,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

func describe(r rules.Rule) ruleInfo {
	return ruleInfo{
		ID:               r.ID(),
		Name:             r.Name(),
		Category:         string(r.Category()),
		Severity:         string(r.Severity()),
		Confidence:       string(r.Confidence()),
		Guideline:        r.Guideline(),
		Summary:          r.Summary(),
		FixGuidance:      r.FixGuidance(),
		DocumentationURL: r.DocumentationURL(),
	}
}

func list(w io.Writer, registry *rules.Registry, format string) error {
	if format == "json" {
		infos := make([]ruleInfo, 0, len(registry.All()))
		for _, r := range registry.All() {
			infos = append(infos, describe(r))
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(infos)
	}

	outputTable := table.NewWriter()
	outputTable.SetOutputMirror(w)
	outputTable.AppendHeader(table.Row{"ID", "Name", "Category", "Severity", "Guideline"})
	for _, r := range registry.All() {
		outputTable.AppendRow(table.Row{r.ID(), r.Name(), string(r.Category()), string(r.Severity()), r.Guideline()})
	}
	outputTable.Render()

	return nil
}

// explain prints full metadata for one rule. An unknown ID is reported as
// not found, never as a failure; listing the valid IDs lets the caller
// self-correct.
func explain(w io.Writer, registry *rules.Registry, id, format string) error {
	rule, ok := registry.Lookup(id)
	if !ok {
		fmt.Fprintf(w, "rule %q not found; run `apptriage rules` for the full list\n", id)

		return nil
	}

	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(describe(rule))
	}

	info := describe(rule)
	fmt.Fprintf(w, "%s - %s\n\n", info.ID, info.Name)
	fmt.Fprintf(w, "Category:   %s\n", info.Category)
	fmt.Fprintf(w, "Severity:   %s\n", info.Severity)
	fmt.Fprintf(w, "Confidence: %s\n", info.Confidence)
	fmt.Fprintf(w, "Guideline:  %s\n\n", info.Guideline)
	fmt.Fprintf(w, "%s\n\nFix: %s\n", info.Summary, info.FixGuidance)
	if info.DocumentationURL != "" {
		fmt.Fprintf(w, "See: %s\n", info.DocumentationURL)
	}

	return nil
}
