package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/housing/engine"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.BandLow, cfg.Band())
	assert.Equal(t, 200000.0, cfg.Price.Default)
	assert.Empty(t, cfg.Proximities)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bins", func(c *Config) { c.Bins = 0 }},
		{"negative whisker", func(c *Config) { c.Whisker = -1 }},
		{"zero step", func(c *Config) { c.Price.Step = 0 }},
		{"inverted range", func(c *Config) { c.Price.Max = -1 }},
		{"default outside range", func(c *Config) { c.Price.Default = 600000 }},
		{"unknown band", func(c *Config) { c.Income = "upper" }},
		{"unknown format", func(c *Config) { c.OutputFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPriceSlider_Snap(t *testing.T) {
	s := Default().Price

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{200000, 200000},
		{204999, 200000},
		{205000, 210000},
		{500001, 500000},
		{499999, 500000},
	}
	for _, tt := range tests {
		got, err := s.Snap(tt.in)
		require.NoError(t, err, "Snap(%v)", tt.in)
		assert.Equal(t, tt.want, got, "Snap(%v)", tt.in)
	}

	_, err := s.Snap(-1)
	assert.Error(t, err)
	_, err = s.Snap(500002)
	assert.Error(t, err)
}

func TestLoad_MissingImplicitFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`data: testdata/housing.csv.zip
income: high
proximities: [INLAND, NEAR BAY]
price:
  min: 0
  max: 500001
  step: 5000
  default: 150000
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0o600))

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.Equal(t, "testdata/housing.csv.zip", cfg.Data)
	assert.Equal(t, engine.BandHigh, cfg.Band())
	assert.Equal(t, []string{"INLAND", "NEAR BAY"}, cfg.Proximities)
	assert.Equal(t, 5000.0, cfg.Price.Step)
	assert.Equal(t, 150000.0, cfg.Price.Default)
	assert.Equal(t, engine.DefaultBins, cfg.Bins, "unset keys keep their defaults")
	assert.Equal(t, "text", cfg.OutputFormat)
}

func TestLoad_TOML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "presets.toml")
	data := []byte(`output_format = "json"
bins = 10
income = "mid"

[price]
min = 0
max = 500001
step = 10000
default = 300000
`)
	require.NoError(t, os.WriteFile(p, data, 0o600))

	cfg, err := Load("", p)

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 10, cfg.Bins)
	assert.Equal(t, engine.BandMid, cfg.Band())
	assert.Equal(t, 300000.0, cfg.Price.Default)
	assert.Equal(t, "housing.csv", cfg.Data)
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("bins: -3\n"), 0o600))

	_, err := Load("", p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bins must be at least 1")
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("bins: [unclosed\n"), 0o600))

	_, err := Load("", p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestWrite_RoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Income = "high"
	cfg.Proximities = []string{"ISLAND"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))
	assert.Contains(t, buf.String(), "income: high")

	p := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o600))
	got, err := Load("", p)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
