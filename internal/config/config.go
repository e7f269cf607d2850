// Package config handles .housing.yaml (or TOML) preset files for the CLI.
//
// Presets only seed widget defaults. The engine never reads them.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spektr-org/housing/engine"
)

// FileName is the preset file looked up in the working directory.
const FileName = ".housing.yaml"

// Config is the contents of a preset file.
type Config struct {
	Data         string      `yaml:"data,omitempty" toml:"data"`
	OutputFormat string      `yaml:"output_format,omitempty" toml:"output_format"`
	Bins         int         `yaml:"bins,omitempty" toml:"bins"`
	Whisker      float64     `yaml:"whisker,omitempty" toml:"whisker"`
	Price        PriceSlider `yaml:"price,omitempty" toml:"price"`
	Income       string      `yaml:"income,omitempty" toml:"income"`
	Proximities  []string    `yaml:"proximities,omitempty" toml:"proximities"` // empty → every label in the table
}

// PriceSlider mirrors the minimum-price slider widget.
type PriceSlider struct {
	Min     float64 `yaml:"min" toml:"min"`
	Max     float64 `yaml:"max" toml:"max"`
	Step    float64 `yaml:"step" toml:"step"`
	Default float64 `yaml:"default" toml:"default"`
}

// Output formats accepted by the CLI.
var OutputFormats = []string{"text", "json", "pretty", "csv"}

// Default returns the built-in presets.
func Default() *Config {
	return &Config{
		Data:         "housing.csv",
		OutputFormat: "text",
		Bins:         engine.DefaultBins,
		Whisker:      engine.DefaultWhisker,
		Price: PriceSlider{
			Min:     0,
			Max:     500001,
			Step:    10000,
			Default: 200000,
		},
		Income: engine.BandLow.String(),
	}
}

// Validate checks the preset for values the CLI cannot use.
func (c *Config) Validate() error {
	if c.Bins < 1 {
		return fmt.Errorf("bins must be at least 1, got %d", c.Bins)
	}
	if c.Whisker <= 0 {
		return fmt.Errorf("whisker must be positive, got %g", c.Whisker)
	}
	if err := c.Price.Validate(); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if _, err := engine.ParseIncomeBand(c.Income); err != nil {
		return fmt.Errorf("income: %w", err)
	}
	if !validFormat(c.OutputFormat) {
		return fmt.Errorf("output_format %q not one of %s", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// Band returns the default income band. Call Validate first.
func (c *Config) Band() engine.IncomeBand {
	b, err := engine.ParseIncomeBand(c.Income)
	if err != nil {
		return engine.BandLow
	}
	return b
}

// Validate checks the slider range and default.
func (s PriceSlider) Validate() error {
	if s.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", s.Step)
	}
	if s.Max < s.Min {
		return fmt.Errorf("max %g below min %g", s.Max, s.Min)
	}
	if s.Default < s.Min || s.Default > s.Max {
		return fmt.Errorf("default %g outside [%g, %g]", s.Default, s.Min, s.Max)
	}
	return nil
}

// Snap moves v onto the slider grid (Min + k·Step), the way the widget
// would. Values outside [Min, Max] are rejected.
func (s PriceSlider) Snap(v float64) (float64, error) {
	if math.IsNaN(v) || v < s.Min || v > s.Max {
		return 0, fmt.Errorf("price %g outside slider range [%g, %g]", v, s.Min, s.Max)
	}
	snapped := s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	if snapped > s.Max {
		snapped -= s.Step
	}
	return snapped, nil
}

func validFormat(f string) bool {
	for _, ok := range OutputFormats {
		if f == ok {
			return true
		}
	}
	return false
}
