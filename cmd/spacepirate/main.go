package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/loop"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger := zap.NewNop()
	if cfg.Logging.File != "" {
		if logger, err = config.NewLogger(cfg.Logging); err != nil {
			fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
			return 1
		}
	}
	defer func() { _ = logger.Sync() }()

	player := audio.Open(logger)
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Rules:  cfg.Rules,
		Logger: logger,
		Audio:  player,
	}
	if err := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		logger.Error("game error", zap.Error(err))
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}
