package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Brick-Guard/internal/config"
	"github.com/Garsondee/Brick-Guard/internal/game"
	"github.com/Garsondee/Brick-Guard/internal/logging"
	"github.com/Garsondee/Brick-Guard/internal/sfx"
	"github.com/Garsondee/Brick-Guard/internal/term"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	logPath := flag.String("log", "brickguard-term.log", "log file (the screen is taken by the game)")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	settings, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.Create(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := logging.New(settings.LogLevel, settings.LogFormat, logFile)

	sound, err := sfx.NewPlayer(settings.Sound.Enabled, settings.Sound.Volume)
	if err != nil {
		logger.Warn().Err(err).Msg("sound disabled")
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	host, err := term.New(screen, term.Options{
		Seed:      settings.Seed,
		Listeners: []game.Listener{sound, logging.NewRoundListener(logger)},
		Logger:    logger,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "create host: %v\n", err)
		os.Exit(1)
	}
	if err := host.Run(); err != nil {
		logger.Error().Err(err).Msg("terminal host")
	}
}
