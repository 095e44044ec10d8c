package cmdlogger

import "log/slog"

// HasErrored reports whether anything has been logged at error level since
// the handler was installed, which the CLI turns into a non-zero exit.
//
// Returns false when the default handler is not a [CmdLogger], as in tests
// that install a plain slog handler.
func HasErrored() bool {
	l, ok := slog.Default().Handler().(CmdLogger)

	if ok {
		return l.HasErrored()
	}

	return false
}

// SetLevel adjusts the minimum level the installed handler emits; a no-op
// when the default handler is not a [CmdLogger].
func SetLevel(level slog.Leveler) {
	l, ok := slog.Default().Handler().(CmdLogger)

	if ok {
		l.SetLevel(level)
	}
}
