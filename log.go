package main

import (
	"io"
	"os"

	"github.com/decred/slog"

	"pong3d/game"
	"pong3d/protocol"
	"pong3d/server"
	"pong3d/terminal"
)

var log = slog.NewBackend(os.Stderr).Logger("MAIN")

// subsystems maps each logger tag to the package that should receive it.
var subsystems = map[string]func(slog.Logger){
	"MAIN": func(l slog.Logger) { log = l },
	"GAME": game.UseLogger,
	"PROT": protocol.UseLogger,
	"SRVR": server.UseLogger,
	"TERM": terminal.UseLogger,
}

// setupLogging points every subsystem at w with the named level.
func setupLogging(w io.Writer, level string) {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		lvl = slog.LevelInfo
	}
	backend := slog.NewBackend(w)
	for tag, use := range subsystems {
		logger := backend.Logger(tag)
		logger.SetLevel(lvl)
		use(logger)
	}
}
