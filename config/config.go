// Package config loads zensnap.yaml. Fields left out of the file keep the
// values from the embedded default.yaml.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// DefaultPath is read when no --config flag is given.
const DefaultPath = "zensnap.yaml"

type Config struct {
	BoardSize  float64 `yaml:"board_size"`
	TrayHeight float64 `yaml:"tray_height"`
	TrayGap    float64 `yaml:"tray_gap"`
	ImageURL   string  `yaml:"image_url"`

	Sound   SoundConfig   `yaml:"sound"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Window  WindowConfig  `yaml:"window"`
	Theme   ThemeConfig   `yaml:"theme"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	File    string  `yaml:"file"`
	Volume  float64 `yaml:"volume"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ThemeConfig struct {
	Background Color `yaml:"background"`
	Board      Color `yaml:"board"`
	Tray       Color `yaml:"tray"`
	Accent     Color `yaml:"accent"`
	Text       Color `yaml:"text"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Parse overlays data on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. A missing file yields Default without error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.BoardSize <= 0:
		return fmt.Errorf("config: board_size must be positive, got %v", c.BoardSize)
	case c.TrayHeight < 0 || c.TrayGap < 0:
		return errors.New("config: tray_height and tray_gap must not be negative")
	case c.Sound.Volume < 0 || c.Sound.Volume > 1:
		return fmt.Errorf("config: sound.volume must be within [0, 1], got %v", c.Sound.Volume)
	}
	switch c.Storage.Driver {
	case "", "file", "json", "sqlite":
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}
