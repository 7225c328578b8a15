package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Session SessionConfig `yaml:"session"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

type UIConfig struct {
	// TickInterval drives the story viewer's progress timer.
	TickInterval string `yaml:"tick_interval"`
	// ImageStep and VideoStep are progress percent added per tick while
	// playing. Video is paced slower on purpose.
	ImageStep float64 `yaml:"image_step"`
	VideoStep float64 `yaml:"video_step"`
	Accent    string  `yaml:"accent"`
}

type SessionConfig struct {
	// UserName is the local display name. Empty means logged out: the
	// reel's create tile asks for login instead of opening the composer.
	UserName  string `yaml:"user_name"`
	AvatarRef string `yaml:"avatar_ref"`
}

type ImportConfig struct {
	// FeedPath optionally points at a local RSS/Atom file whose items
	// are added to the help catalog. No network fetch ever happens.
	FeedPath string `yaml:"feed_path"`
	Category string `yaml:"category"`
}

type LoggingConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// GetTickInterval parses the viewer tick interval string.
func (u *UIConfig) GetTickInterval() (time.Duration, error) {
	return time.ParseDuration(u.TickInterval)
}

// Load reads configuration from file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.Import.FeedPath != "" {
		cfg.Import.FeedPath = expandPath(cfg.Import.FeedPath)
	}
	if cfg.Logging.Path != "" {
		cfg.Logging.Path = expandPath(cfg.Logging.Path)
	}

	// Set defaults
	if cfg.UI.TickInterval == "" {
		cfg.UI.TickInterval = "50ms"
	}
	if cfg.UI.ImageStep == 0 {
		cfg.UI.ImageStep = 1.0
	}
	if cfg.UI.VideoStep == 0 {
		cfg.UI.VideoStep = 0.5
	}
	if cfg.UI.Accent == "" {
		cfg.UI.Accent = "205"
	}
	if cfg.Import.Category == "" {
		cfg.Import.Category = "Getting Started"
	}
	if cfg.Logging.Path == "" {
		cfg.Logging.Path = defaultLogPath()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return &cfg, nil
}

// Save writes configuration to file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "unera", "config.yaml")
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "unera.log"
	}
	return filepath.Join(home, ".local", "state", "unera", "unera.log")
}
