package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Display selects how progress is presented on the console
type Display string

const (
	DisplayAuto  Display = "auto"  // tui on a terminal, plain otherwise
	DisplayTUI   Display = "tui"   // Bubble Tea progress screen
	DisplayBar   Display = "bar"   // single-line progress bar
	DisplayPlain Display = "plain" // "Progress: ..." lines
	DisplayNone  Display = "none"  // start/finish lines only
)

// Valid reports whether d is a known display mode
func (d Display) Valid() bool {
	switch d {
	case DisplayAuto, DisplayTUI, DisplayBar, DisplayPlain, DisplayNone:
		return true
	}
	return false
}

// Config holds all application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Convert ConvertConfig `mapstructure:"convert"`
	History HistoryConfig `mapstructure:"history"`
	Player  PlayerConfig  `mapstructure:"player"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // empty = text logs on stderr
	Level string `mapstructure:"level"`
}

// ConvertConfig holds codec tuning
type ConvertConfig struct {
	BufferSize int     `mapstructure:"buffer_size"`
	ExactCount bool    `mapstructure:"exact_count"` // decode: count lines instead of size/9
	Display    Display `mapstructure:"display"`
}

// HistoryConfig holds job history configuration
type HistoryConfig struct {
	Path  string `mapstructure:"path"` // empty = memory only
	Limit int    `mapstructure:"limit"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Convert: ConvertConfig{
			BufferSize: 64 * 1024,
			ExactCount: false,
			Display:    DisplayAuto,
		},
		History: HistoryConfig{
			Path:  filepath.Join(defaultDataPath(), "history.db"),
			Limit: 20,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "bitreel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "bitreel")
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(defaultDataPath(), "bitreel.log")
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "bitreel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "bitreel")
	}
}

// DefaultConfigFile returns where SaveConfig writes when given no path
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper returns a viper instance seeded with defaults and env bindings
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("convert.buffer_size", def.Convert.BufferSize)
	v.SetDefault("convert.exact_count", def.Convert.ExactCount)
	v.SetDefault("convert.display", string(def.Convert.Display))
	v.SetDefault("history.path", def.History.Path)
	v.SetDefault("history.limit", def.History.Limit)
	v.SetDefault("player.command", def.Player.Command)
	v.SetDefault("player.args", def.Player.Args)

	// Environment variable overrides (BITREEL_CONVERT_DISPLAY=plain)
	v.SetEnvPrefix("BITREEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment. An explicit
// path must exist; otherwise the default locations are searched and a
// missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the converter cannot use
func (c *Config) Validate() error {
	if !c.Convert.Display.Valid() {
		return fmt.Errorf("invalid convert.display %q (want auto, tui, bar, plain or none)", c.Convert.Display)
	}
	if c.Convert.BufferSize < 0 {
		return fmt.Errorf("invalid convert.buffer_size %d", c.Convert.BufferSize)
	}
	return nil
}

// SaveConfig writes cfg as YAML to path (DefaultConfigFile when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("convert.buffer_size", cfg.Convert.BufferSize)
	v.Set("convert.exact_count", cfg.Convert.ExactCount)
	v.Set("convert.display", string(cfg.Convert.Display))

	v.Set("history.path", cfg.History.Path)
	v.Set("history.limit", cfg.History.Limit)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
