package server

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the logger used by the server package.
func UseLogger(logger slog.Logger) {
	log = logger
}
