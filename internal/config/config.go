// Package config loads engine configuration from YAML. Every knob has a
// shipped default; an absent file yields a fully defaulted config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/smallbiznis/atelier/internal/geometry"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable pointing at the config file.
const EnvConfigPath = "ATELIER_CONFIG"

// Pricing mode values. PerArea reproduces the reference behavior where
// overlapping areas each charge for a contained element; SingleOwner
// bills every element once under its first-match owner.
const (
	PricingModePerArea     = "per_area"
	PricingModeSingleOwner = "single_owner"
)

type Config struct {
	Service   ServiceConfig                   `yaml:"service"`
	Canvas    CanvasConfig                    `yaml:"canvas"`
	History   HistoryConfig                   `yaml:"history"`
	Duplicate DuplicateConfig                 `yaml:"duplicate"`
	Pricing   PricingConfig                   `yaml:"pricing"`
	Elements  map[string]ElementDefaultConfig `yaml:"elements"`
	Tracing   TracingConfig                   `yaml:"tracing"`
}

// ElementDefaultConfig overrides the shipped creation defaults for one
// element type. Zero values keep the shipped value.
type ElementDefaultConfig struct {
	BasePrice    float64 `yaml:"base_price"`
	Complexity   string  `yaml:"complexity"`
	TimeEstimate int     `yaml:"time_estimate"`
}

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Size returns the configured canvas as a geometry value.
func (c CanvasConfig) Size() geometry.CanvasSize {
	return geometry.CanvasSize{Width: c.Width, Height: c.Height}
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

type DuplicateConfig struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type PricingConfig struct {
	// Mode selects per_area (reference double-charge) or single_owner.
	Mode string `yaml:"mode"`
	// OutsideAreaPrice is the flat fallback charged for an element whose
	// own base price is unset and which no area contains.
	OutsideAreaPrice float64 `yaml:"outside_area_price"`
}

type TracingConfig struct {
	Enabled          bool    `yaml:"enabled"`
	ExporterEndpoint string  `yaml:"exporter_endpoint"`
	ExporterProtocol string  `yaml:"exporter_protocol"`
	SamplingRatio    float64 `yaml:"sampling_ratio"`
}

// Default returns the shipped configuration.
func Default() Config {
	return Config{}.withDefaults()
}

// Load reads a YAML config file and fills in defaults. An empty path
// returns the defaults untouched.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// FromEnv loads the file named by ATELIER_CONFIG, or defaults when unset.
func FromEnv() (Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Service.Name) == "" {
		c.Service.Name = "atelier"
	}
	if strings.TrimSpace(c.Service.Environment) == "" {
		c.Service.Environment = "development"
	}
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = geometry.StandardCanvasSize.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = geometry.StandardCanvasSize.Height
	}
	if c.History.Capacity <= 0 {
		c.History.Capacity = 20
	}
	if c.Duplicate.OffsetX == 0 {
		c.Duplicate.OffsetX = 20
	}
	if c.Duplicate.OffsetY == 0 {
		c.Duplicate.OffsetY = 20
	}
	switch c.Pricing.Mode {
	case PricingModePerArea, PricingModeSingleOwner:
	default:
		c.Pricing.Mode = PricingModePerArea
	}
	if c.Pricing.OutsideAreaPrice <= 0 {
		c.Pricing.OutsideAreaPrice = 2
	}
	if c.Tracing.SamplingRatio <= 0 {
		c.Tracing.SamplingRatio = 0.1
	}
	return c
}
