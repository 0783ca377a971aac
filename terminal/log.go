package terminal

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the logger used by the terminal package.
func UseLogger(logger slog.Logger) {
	log = logger
}
