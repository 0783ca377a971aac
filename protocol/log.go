package protocol

import "github.com/decred/slog"

var log = slog.Disabled

func UseLogger(logger slog.Logger) {
	log = logger
}
