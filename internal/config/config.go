// Package config holds the settings for the adplan command line tool.
package config

import (
	"fmt"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akeil/adplan"
)

// Config is the top level configuration.
type Config struct {
	// LogLevel is one of debug, info, warning, error or off.
	LogLevel string `yaml:"log_level"`
	// StorageDir is the directory with plan files.
	StorageDir string `yaml:"storage_dir"`
	// ImageDir is the base directory for image references.
	ImageDir string `yaml:"image_dir"`
	// Producer is the application version written to saved plans.
	Producer string `yaml:"producer"`

	Render RenderConfig `yaml:"render"`
	Relay  RelayConfig  `yaml:"relay"`
}

// RenderConfig controls PNG and PDF output.
type RenderConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	// Background as "#rrggbb" or "none".
	Background string `yaml:"background"`
}

// RelayConfig holds the connection settings for the relay server.
type RelayConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:   "warning",
		StorageDir: defaultStorageDir(),
		ImageDir:   ".",
		Producer:   "1.0.0",
		Render: RenderConfig{
			Width:      1920,
			Height:     1080,
			Scale:      1,
			Background: "#ffffff",
		},
	}
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plans"
	}
	return filepath.Join(dir, "adplan", "plans")
}

// Load reads a YAML file on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}

	err = yaml.Unmarshal(data, c)
	if err != nil {
		return nil, adplan.Wrap(err, "parse config %q", path)
	}

	err = c.Validate()
	if err != nil {
		return nil, adplan.Wrap(err, "config %q", path)
	}
	return c, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return adplan.NewValidationError("invalid page size %vx%v", c.Render.Width, c.Render.Height)
	}
	if c.Render.Scale <= 0 {
		return adplan.NewValidationError("invalid scale %v", c.Render.Scale)
	}
	_, err := c.Render.BackgroundColor()
	if err != nil {
		return err
	}
	_, err = c.ProducerVersion()
	return err
}

// ProducerVersion returns the parsed producer version.
func (c *Config) ProducerVersion() (adplan.ProducerVersion, error) {
	return adplan.ParseProducerVersion(c.Producer)
}

// BackgroundColor parses the background setting.
// Returns nil for "none" or an empty value.
func (r RenderConfig) BackgroundColor() (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(r.Background))
	if s == "" || s == "none" {
		return nil, nil
	}

	var c color.RGBA
	n, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil || n != 3 || len(s) != 7 {
		return nil, adplan.NewValidationError("invalid color %q", r.Background)
	}
	c.A = 255
	return c, nil
}
