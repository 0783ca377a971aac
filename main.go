package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"pong3d/config"
	"pong3d/server"
	"pong3d/sound"
	"pong3d/terminal"
)

const (
	shutdownTimeout = 5 * time.Second
	terminalLogFile = "pong3d.log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	useTerminal := flag.Bool("terminal", false, "play in this terminal instead of serving browsers")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *useTerminal {
		err = runTerminal(ctx, cfg)
	} else {
		setupLogging(os.Stderr, cfg.LogLevel)
		err = runServer(ctx, cfg)
	}
	if err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg config.Config) error {
	var sounds *sound.Library
	if cfg.Sounds {
		sounds = sound.NewLibrary()
	}
	srv := server.NewServer(server.Config{
		FrameInterval: cfg.FrameInterval(),
		Difficulty:    cfg.AIDifficulty,
		HitGuard:      cfg.PaddleHitGuard,
		InputRate:     cfg.InputRate,
		InputBurst:    cfg.InputBurst,
		Sounds:        sounds,
	})
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("Server started on %s", cfg.ListenAddr)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP shutdown: %v", err)
	}
	srv.Close()
	return nil
}

func runTerminal(ctx context.Context, cfg config.Config) error {
	path := cfg.LogFile
	if path == "" {
		path = terminalLogFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	setupLogging(f, cfg.LogLevel)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	app := terminal.New(terminal.Options{
		FrameInterval: cfg.FrameInterval(),
		KeyHold:       cfg.KeyHold(),
		Difficulty:    cfg.AIDifficulty,
		HitGuard:      cfg.PaddleHitGuard,
	})
	return app.Run(ctx, screen)
}
