// Package scan implements the `scan` command for apptriage.
package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/apptriage/apptriage/cmd/apptriage/internal/cmd"
	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/cmdreporter"
	"github.com/apptriage/apptriage/internal/rules"
	"github.com/apptriage/apptriage/internal/scanner"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func Command(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "scan",
		Usage:       "scans an iOS project's build artifacts for App Store rejection risks.",
		Description: "scans an iOS project's build artifacts for App Store rejection risks.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "rules",
				Aliases: []string{"R"},
				Usage:   "run only the listed rule IDs",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "skip the listed rule IDs",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "sets the output format; value can be: " + formatList(),
				Value:   "text",
				Action: func(_ context.Context, _ *cli.Command, s string) error {
					if !slices.Contains(cmdreporter.Format(), s) {
						return fmt.Errorf("unsupported output format \"%s\" - must be one of: %s", s, formatList())
					}

					return nil
				},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "saves the result to the given file path",
			},
			&cli.StringFlag{
				Name:  "fail-on",
				Usage: "minimum finding severity that causes a non-zero exit; value can be: low, medium, high, critical",
				Value: "high",
				Action: func(_ context.Context, _ *cli.Command, s string) error {
					_, err := rules.ParseSeverity(s)

					return err
				},
			},
			&cli.StringFlag{
				Name:  "verbosity",
				Usage: "specify the level of information that should be provided during runtime; value can be: " + verbosityList(),
				Value: "info",
			},
		},
		ArgsUsage: "[path]",
		Action: func(ctx context.Context, c *cli.Command) error {
			return action(ctx, c, stdout)
		},
	}
}

func action(_ context.Context, c *cli.Command, stdout io.Writer) error {
	level, err := cmdlogger.ParseLevel(c.String("verbosity"))
	if err != nil {
		return err
	}
	cmdlogger.SetLevel(level)

	format := c.String("format")

	// Structured formats share stdout with nothing else.
	if format == "json" || format == "sarif" {
		cmdlogger.SendEverythingToStderr()
	}

	path := c.Args().First()
	if path == "" {
		path = "."
	}

	result, err := scanner.Scan(scanner.Options{
		Path:    path,
		Rules:   c.StringSlice("rules"),
		Exclude: c.StringSlice("exclude"),
	})
	if err != nil {
		return err
	}

	writer := stdout
	terminalWidth := 0
	if outputPath := c.String("output"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		writer = file
	} else if stdoutAsFile, ok := stdout.(*os.File); ok {
		if width, _, err := term.GetSize(int(stdoutAsFile.Fd())); err == nil {
			terminalWidth = width
		}
	}

	if err := cmdreporter.PrintResult(result, format, writer, terminalWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	threshold, _ := rules.ParseSeverity(c.String("fail-on"))
	for _, finding := range result.Findings {
		if finding.Severity.AtLeast(threshold) {
			return cmd.ErrFindingsAboveThreshold
		}
	}

	return nil
}

func formatList() string {
	return strings.Join(cmdreporter.Format(), ", ")
}

func verbosityList() string {
	return strings.Join(cmdlogger.Levels(), ", ")
}
