package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the settings file searched for in the config directory.
const FileName = "brickguard.cfg.json"

// WindowConfig holds ebiten window settings.
type WindowConfig struct {
	Scale int `json:"scale" mapstructure:"scale"`
}

// SoundConfig holds sound cue settings.
type SoundConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

// InputConfig holds on-screen control settings.
type InputConfig struct {
	TouchRepeat time.Duration `json:"touchRepeat" mapstructure:"touchRepeat"`
}

// HeadlessConfig holds defaults for the batch report.
type HeadlessConfig struct {
	Runs  int `json:"runs" mapstructure:"runs"`
	Ticks int `json:"ticks" mapstructure:"ticks"`
}

// Settings is the decoded configuration.
type Settings struct {
	LogLevel  string         `json:"logLevel" mapstructure:"logLevel"`
	LogFormat string         `json:"logFormat" mapstructure:"logFormat"`
	Seed      int64          `json:"seed" mapstructure:"seed"`
	Window    WindowConfig   `json:"window" mapstructure:"window"`
	Sound     SoundConfig    `json:"sound" mapstructure:"sound"`
	Input     InputConfig    `json:"input" mapstructure:"input"`
	Headless  HeadlessConfig `json:"headless" mapstructure:"headless"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("seed", 0)

	viper.SetDefault("window.scale", 2)

	viper.SetDefault("sound.enabled", true)
	viper.SetDefault("sound.volume", 0.25)

	viper.SetDefault("input.touchRepeat", "50ms")

	viper.SetDefault("headless.runs", 5)
	viper.SetDefault("headless.ticks", 36000)
}

// Load sets defaults, binds BRICKGUARD_* environment variables and reads
// brickguard.cfg.json from configDir. A missing file leaves the defaults in
// place; a file that exists but cannot be parsed is an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix("BRICKGUARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Get decodes the loaded configuration into Settings.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if s.Window.Scale < 1 {
		s.Window.Scale = 1
	}
	if s.Sound.Volume < 0 {
		s.Sound.Volume = 0
	}
	return s, nil
}
