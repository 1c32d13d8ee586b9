package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Brick-Guard/internal/config"
	"github.com/Garsondee/Brick-Guard/internal/display"
	"github.com/Garsondee/Brick-Guard/internal/game"
	"github.com/Garsondee/Brick-Guard/internal/logging"
	"github.com/Garsondee/Brick-Guard/internal/sfx"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	flag.Parse()

	boot := logging.New("info", "console", os.Stderr)
	if err := config.Load(*configDir); err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	settings, err := config.Get()
	if err != nil {
		boot.Fatal().Err(err).Msg("decode config")
	}
	logger := logging.New(settings.LogLevel, settings.LogFormat, os.Stderr)

	sound, err := sfx.NewPlayer(settings.Sound.Enabled, settings.Sound.Volume)
	if err != nil {
		logger.Warn().Err(err).Msg("sound disabled")
	}
	defer sound.Close()

	g, err := display.New(display.Options{
		Seed:        settings.Seed,
		TouchRepeat: settings.Input.TouchRepeat,
		Listeners:   []game.Listener{sound, logging.NewRoundListener(logger)},
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("create game")
	}

	ebiten.SetWindowTitle("Brick Guard")
	ebiten.SetWindowSize(display.ScreenWidth*settings.Window.Scale, display.ScreenHeight*settings.Window.Scale)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("run game")
	}
}
