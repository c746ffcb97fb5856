package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/spacecleanup/internal/assets"
	"github.com/tomz197/spacecleanup/internal/audio"
	"github.com/tomz197/spacecleanup/internal/config"
	"github.com/tomz197/spacecleanup/internal/loop"
	"github.com/tomz197/spacecleanup/internal/save"
	"golang.org/x/term"
)

const defaultDataDir = "data"

func main() {
	os.Exit(run())
}

func run() int {
	dataDir := config.GetEnv("SPACECLEANUP_DATA_DIR", defaultDataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data dir: %v\n", err)
		return 1
	}

	// Stdout is the play field, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(dataDir, "game.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, "game")

	sprites, err := assets.LoadLibrary()
	if err != nil {
		logger.Error("failed to load sprites", "err", err)
		fmt.Fprintf(os.Stderr, "failed to load sprites: %v\n", err)
		return 1
	}

	var player audio.Player = audio.Nop{}
	if config.GetEnvBool("SPACECLEANUP_AUDIO", true) {
		speaker, err := audio.NewSpeaker()
		if err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("audio unavailable", "err", err)
		} else {
			player = speaker
			defer speaker.Close()
		}
	}

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

	logger.Info("starting", "dataDir", dataDir)
	err = loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Store:    save.NewFileStore(dataDir),
		Audio:    player,
		Logger:   logger,
		Sprites:  sprites,
		Renderer: lipgloss.NewRenderer(os.Stdout),
	})
	if err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}
