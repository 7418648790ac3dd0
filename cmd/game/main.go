package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/asteroid-destroyer/internal/audio"
	"github.com/tomz197/asteroid-destroyer/internal/config"
	"github.com/tomz197/asteroid-destroyer/internal/game"
	"github.com/tomz197/asteroid-destroyer/internal/loop"
	"github.com/tomz197/asteroid-destroyer/internal/score"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	settings := config.FromEnv()

	// The terminal belongs to the game, so logs only go to a file.
	logger, logCloser, err := settings.NewLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	if err := run(settings, logger); err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *log.Logger) error {
	curve, err := game.ParseCurve(settings.DifficultyCurve)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := score.Open(ctx, settings.ScoreDB)
	if err != nil {
		// Playing without persistence beats not playing.
		logger.Warn("score store unavailable", "path", settings.ScoreDB, "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	var sink game.Sink
	if settings.AudioEnabled {
		player := audio.NewPlayer(settings.AudioVolume, logger)
		if err := player.Start(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			sink = player
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("game started", "curve", curve, "seed", settings.Seed)
	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Sink:   sink,
		Store:  store,
		Logger: logger,
		Seed:   settings.Seed,
		Curve:  curve,
	})
}
