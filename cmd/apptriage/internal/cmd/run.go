// Package cmd wires the apptriage CLI together: logger setup, command
// registration, and the mapping from error types to process exit codes.
package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/discovery"
	"github.com/apptriage/apptriage/internal/scanner"
	"github.com/apptriage/apptriage/internal/version"
	"github.com/urfave/cli/v3"
)

// ErrFindingsAboveThreshold is returned by the scan command when findings
// meet or exceed the configured severity threshold, so the exit code can
// distinguish "issues found" from operational failures.
var ErrFindingsAboveThreshold = errors.New("findings at or above the severity threshold")

type CommandBuilder = func(stdout, stderr io.Writer) *cli.Command

func Run(args []string, stdout, stderr io.Writer, commands []CommandBuilder) int {
	logHandler := cmdlogger.New(stdout, stderr)
	slog.SetDefault(slog.New(logHandler))

	cli.VersionPrinter = func(cmd *cli.Command) {
		cmdlogger.Infof("apptriage version: %s", cmd.Version)
	}

	cmds := make([]*cli.Command, 0, len(commands))
	for _, builder := range commands {
		cmds = append(cmds, builder(stdout, stderr))
	}

	app := &cli.Command{
		Name:           "apptriage",
		Version:        version.Version,
		Usage:          "statically checks an iOS project's build artifacts for App Store rejection risks",
		Suggest:        true,
		Writer:         stdout,
		ErrWriter:      stderr,
		DefaultCommand: "scan",
		Commands:       cmds,

		CustomRootCommandHelpTemplate: getCustomHelpTemplate(),
	}

	// cli's default exit handler interprets any error that happens to have
	// an ExitCode() method, which hijacks our own error-to-exit-code
	// mapping below. Remove it entirely.
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, _ error) {}

	args = insertDefaultCommand(args, app.Commands, app.DefaultCommand, stderr)

	err := app.Run(context.Background(), args)

	if err != nil {
		var invalidRules *scanner.InvalidRulesError
		var noRules *scanner.NoRulesError

		switch {
		case errors.Is(err, ErrFindingsAboveThreshold):
			return 1
		case errors.As(err, &invalidRules), errors.As(err, &noRules):
			cmdlogger.Errorf("%v", err)
			return 2
		case errors.Is(err, discovery.ErrIPANotSupported), errors.Is(err, discovery.ErrNoProjectFound):
			cmdlogger.Errorf("%v", err)
			return 3
		}
		cmdlogger.Errorf("%v", err)
	}

	// if we've been told to print an error, and not already exited with
	// a specific error code, then exit with a generic non-zero code
	if logHandler.HasErrored() {
		return 127
	}

	return 0
}
