package config

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"sigmark/internal/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults applied to every annotation drawn by the app layer
type Config struct {
	Bracket BracketConfig `yaml:"bracket"`
	Panel   PanelConfig   `yaml:"panel"`
	Render  RenderConfig  `yaml:"render"`
}

// BracketConfig holds significance bracket layout settings
type BracketConfig struct {
	DH           float64 `yaml:"dh"`            // gap above the taller bar, fraction of the y span
	BarH         float64 `yaml:"barh"`          // end tick height, fraction of the y span
	FontSize     float64 `yaml:"font_size"`     // 0 keeps the surface default
	MaxAsterisks int     `yaml:"max_asterisks"` // 0 means no cap requested
	LineColor    string  `yaml:"line_color"`
}

// PanelConfig holds panel label settings
type PanelConfig struct {
	FontSize float64 `yaml:"font_size"`
}

// RenderConfig holds image output settings for chart-backed surfaces
type RenderConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"` // "png" or "svg"
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Bracket: BracketConfig{
			DH:        0.05,
			BarH:      0.05,
			LineColor: "black",
		},
		Panel: PanelConfig{
			FontSize: 16,
		},
		Render: RenderConfig{
			Width:  1024,
			Height: 768,
			Format: "png",
		},
	}
}

// Load reads configuration from environment variables, after loading a .env file if one exists
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	config := Default()
	loadBracketConfig(&config.Bracket)
	loadPanelConfig(&config.Panel)
	loadRenderConfig(&config.Render)

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// LoadFile decodes a YAML file over the defaults. Unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadError(path, err)
	}

	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to parse %s", path))
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadBracketConfig(c *BracketConfig) {
	c.DH = getEnvFloatOrDefault("SIGMARK_BRACKET_DH", c.DH)
	c.BarH = getEnvFloatOrDefault("SIGMARK_BRACKET_BARH", c.BarH)
	c.FontSize = getEnvFloatOrDefault("SIGMARK_BRACKET_FONT_SIZE", c.FontSize)
	c.MaxAsterisks = getEnvIntOrDefault("SIGMARK_BRACKET_MAX_ASTERISKS", c.MaxAsterisks)
	c.LineColor = getEnvOrDefault("SIGMARK_BRACKET_LINE_COLOR", c.LineColor)
}

func loadPanelConfig(c *PanelConfig) {
	c.FontSize = getEnvFloatOrDefault("SIGMARK_PANEL_FONT_SIZE", c.FontSize)
}

func loadRenderConfig(c *RenderConfig) {
	c.Width = getEnvIntOrDefault("SIGMARK_RENDER_WIDTH", c.Width)
	c.Height = getEnvIntOrDefault("SIGMARK_RENDER_HEIGHT", c.Height)
	c.Format = strings.ToLower(getEnvOrDefault("SIGMARK_RENDER_FORMAT", c.Format))
}

// Validate checks value ranges
func Validate(config *Config) error {
	if config.Bracket.DH < 0 {
		return errors.ConfigInvalid("bracket dh must be >= 0")
	}
	if config.Bracket.BarH < 0 {
		return errors.ConfigInvalid("bracket barh must be >= 0")
	}
	if config.Bracket.FontSize < 0 || config.Panel.FontSize < 0 {
		return errors.ConfigInvalid("font sizes must be >= 0")
	}
	if config.Bracket.MaxAsterisks < 0 {
		return errors.ConfigInvalid("max_asterisks must be >= 0")
	}
	if config.Render.Width <= 0 || config.Render.Height <= 0 {
		return errors.ConfigInvalid("render width and height must be positive")
	}
	switch config.Render.Format {
	case "png", "svg":
	default:
		return errors.ConfigInvalid("render format must be png or svg, got " + strconv.Quote(config.Render.Format))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
