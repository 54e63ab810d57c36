// Package config loads delve's YAML settings.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Config is the full settings file.
type Config struct {
	Seed       int64  `yaml:"seed"` // 0 = time based
	StartTier  int    `yaml:"start_tier"`
	Profession string `yaml:"profession"`
	PlayerName string `yaml:"player_name"`

	Save      SaveConfig      `yaml:"save"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SaveConfig locates the save database and the slot to use.
type SaveConfig struct {
	DBPath string `yaml:"db_path"`
	Slot   string `yaml:"slot"`
}

// LogConfig sets the log level and destination. An empty File logs to
// stderr, which the terminal UI would draw over.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TelemetryConfig switches OTLP trace export on or off.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		StartTier:  1,
		Profession: "warrior",
		PlayerName: "Adventurer",
		Save:       SaveConfig{DBPath: "~/.delve/saves.db", Slot: "default"},
		Log:        LogConfig{Level: "info", File: "~/.delve/delve.log"},
		Telemetry:  TelemetryConfig{SampleRatio: 1},
	}
}

// Load reads the settings.
// Search order: customPath -> ~/.delve/config.yaml -> ./configs/config.yaml -> embedded default
//
// Files are layered over Default, so a file may set only the keys it
// cares about.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if path := userConfigPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "config.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot start with.
func (c Config) Validate() error {
	if c.StartTier < 1 {
		return fmt.Errorf("start_tier must be at least 1, got %d", c.StartTier)
	}
	if c.Save.Slot == "" {
		return fmt.Errorf("save.slot must not be empty")
	}
	if r := c.Telemetry.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("telemetry.sample_ratio must be within [0, 1], got %v", r)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".delve", "config.yaml")
}
