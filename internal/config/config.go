package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/splitview/internal/logging"
)

const (
	configDirName  = ".splitview"
	configFileName = "config.json"
	layoutFileName = "layout.yaml"
)

// Handle defaults match the split-view component this app grew out of.
const (
	DefaultFocusedColor = "#0D6EFD"
	DefaultHandleColor  = "#D3D3D3"
	DefaultFocusedSize  = 5
	DefaultHandleSize   = 1
	DefaultGlamourStyle = "dark"
)

var ErrNotConfigured = errors.New("splitview is not configured")

var log = logging.New("config")

// HandleOptions controls how handles are drawn in their two states. They are
// purely presentational and never feed into the layout math, except that the
// size widens the grab zone.
type HandleOptions struct {
	FocusedColor string `json:"focused_color,omitempty"`
	DefaultColor string `json:"default_color,omitempty"`
	FocusedSize  int    `json:"focused_size,omitempty"`
	DefaultSize  int    `json:"default_size,omitempty"`
}

// Config stores user-defined splitview settings.
type Config struct {
	LayoutFile        string            `json:"layout_file"`
	Handle            HandleOptions     `json:"handle"`
	GlamourStyle      string            `json:"glamour_style,omitempty"`
	ClampDistribution bool              `json:"clamp_distribution,omitempty"`
	WatchLayout       *bool             `json:"watch_layout,omitempty"`
	Keybindings       map[string]string `json:"keybindings,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() (Config, error) {
	layoutFile, err := DefaultLayoutPath()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{LayoutFile: layoutFile}
	cfg.applyDefaults()
	return cfg, nil
}

// Watching reports whether the layout file should be watched for changes.
func (c Config) Watching() bool {
	return c.WatchLayout == nil || *c.WatchLayout
}

func (c *Config) applyDefaults() {
	if c.Handle.FocusedColor == "" {
		c.Handle.FocusedColor = DefaultFocusedColor
	}
	if c.Handle.DefaultColor == "" {
		c.Handle.DefaultColor = DefaultHandleColor
	}
	if c.Handle.FocusedSize <= 0 {
		c.Handle.FocusedSize = DefaultFocusedSize
	}
	if c.Handle.DefaultSize <= 0 {
		c.Handle.DefaultSize = DefaultHandleSize
	}
	if strings.TrimSpace(c.GlamourStyle) == "" {
		c.GlamourStyle = DefaultGlamourStyle
	}
}

// ConfigDir returns the directory holding splitview's files.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultLayoutPath returns where the layout document lives unless configured.
func DefaultLayoutPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, layoutFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the saved configuration.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.LayoutFile) == "" {
		cfg.LayoutFile, err = DefaultLayoutPath()
		if err != nil {
			return Config{}, err
		}
	}
	layoutFile, err := NormalizePath(cfg.LayoutFile)
	if err != nil {
		return Config{}, fmt.Errorf("invalid layout_file: %w", err)
	}
	cfg.LayoutFile = layoutFile
	cfg.applyDefaults()

	log.Debug("loaded config", "path", path, "layout_file", cfg.LayoutFile)
	return cfg, nil
}

// LoadOrDefault returns the saved configuration, or the defaults when none
// has been written yet.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotConfigured) {
		return Default()
	}
	return cfg, err
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	layoutFile, err := NormalizePath(cfg.LayoutFile)
	if err != nil {
		return fmt.Errorf("invalid layout_file: %w", err)
	}
	cfg.LayoutFile = layoutFile

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// NormalizePath expands and normalizes a file path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
