package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `longitude,latitude,housing_median_age,total_rooms,total_bedrooms,population,households,median_income,median_house_value,ocean_proximity
-121.24,39.37,16,2785,616,1387,530,1.0,50000,INLAND
-121.22,39.43,17,2254,485,1007,433,3.0,150000,INLAND
-121.32,39.29,11,2640,505,1257,445,3.0,250000,INLAND
-121.40,39.33,15,2655,493,1200,432,5.0,350000,INLAND
-121.45,39.26,15,2319,416,1047,385,5.0,450000,INLAND
-122.23,37.88,41,880,129,322,126,8.3252,452600,NEAR BAY
-122.25,37.85,52,1627,,565,259,3.8462,342200,NEAR BAY
`

func writeDataset(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "housing.csv")
	require.NoError(t, os.WriteFile(p, []byte(testCSV), 0o600))
	return p
}

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color", "--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.code
	}
	return -1
}

// ============================================================================
// EXPLORE
// ============================================================================

func TestExplore_ScenarioJSON(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "", "explore", "--data", data,
		"--min-price", "200000", "--proximity", "inland", "--income", "mid", "--format", "json")

	require.NoError(t, err)
	var got struct {
		Data   string `json:"data"`
		Result struct {
			Count  int    `json:"count"`
			Reply  string `json:"reply"`
			Config struct {
				PriceThreshold     float64  `json:"priceThreshold"`
				AllowedProximities []string `json:"allowedProximities"`
				IncomeBand         string   `json:"incomeBand"`
			} `json:"config"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, data, got.Data)
	assert.Equal(t, 1, got.Result.Count)
	assert.Equal(t, "1 record after filtering.", got.Result.Reply)
	assert.Equal(t, 200000.0, got.Result.Config.PriceThreshold)
	assert.Equal(t, []string{"INLAND"}, got.Result.Config.AllowedProximities)
	assert.Equal(t, "mid", got.Result.Config.IncomeBand)
}

func TestExplore_TextDefaults(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "", "explore", "--data", data)

	require.NoError(t, err)
	assert.Contains(t, out, "min price:   $200,000")
	assert.Contains(t, out, "proximities: INLAND, NEAR BAY")
	assert.Contains(t, out, "No records match the current filters.", "no low-income row is at or above $200,000")
}

func TestExplore_TextHistogramAndStats(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "", "explore", "--data", data, "--min-price", "0", "--income", "high")

	require.NoError(t, err)
	assert.Contains(t, out, "3 records after filtering.")
	assert.Contains(t, out, "Median house value distribution")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "NEAR BAY")
}

func TestExplore_CSV(t *testing.T) {
	data := writeDataset(t)
	outFile := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, "", "explore", "--data", data, "--min-price", "0", "--income", "high",
		"--format", "csv", "--out", outFile)

	require.NoError(t, err)
	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "bin_low,bin_high,count", lines[0])
	assert.Len(t, lines, 1+30+1+1+2, "header, bins, blank, stats header, two groups")
	assert.Equal(t, "ocean_proximity,count,min,q1,median,q3,max,outliers", lines[32])
	assert.True(t, strings.HasPrefix(lines[33], "INLAND,2,"))
	assert.True(t, strings.HasPrefix(lines[34], "NEAR BAY,1,"))
}

func TestExplore_NoneSelection(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "", "explore", "--data", data, "--none", "--min-price", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "proximities: (none)")
	assert.Contains(t, out, "No records match the current filters.")
}

func TestExplore_Charts(t *testing.T) {
	data := writeDataset(t)
	dir := filepath.Join(t.TempDir(), "charts")

	_, err := execute(t, "", "explore", "--data", data, "--min-price", "0", "--income", "high",
		"--format", "json", "--charts", dir)

	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestExplore_ChartsSingleProximity(t *testing.T) {
	data := writeDataset(t)
	dir := filepath.Join(t.TempDir(), "charts")

	_, err := execute(t, "", "explore", "--data", data, "--min-price", "0", "--income", "mid",
		"--proximity", "INLAND", "--format", "json", "--charts", dir)

	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestExplore_Errors(t *testing.T) {
	data := writeDataset(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing dataset", []string{"explore", "--data", filepath.Join(t.TempDir(), "nope.csv")}, ExitLoadFailure},
		{"unknown proximity", []string{"explore", "--data", data, "-p", "MOON"}, ExitInvalidArgs},
		{"price above slider", []string{"explore", "--data", data, "--min-price", "900000"}, ExitInvalidArgs},
		{"bad format", []string{"explore", "--data", data, "--format", "xml"}, ExitInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(err), err.Error())
		})
	}
}

func TestExplore_BadIncomeFlag(t *testing.T) {
	_, err := execute(t, "", "explore", "--data", writeDataset(t), "--income", "huge")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "income")
}

func TestExplore_WrongSchema(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(p, []byte("a,b\n1,2\n"), 0o600))

	_, err := execute(t, "", "explore", "--data", p)

	require.Error(t, err)
	assert.Equal(t, ExitLoadFailure, exitCode(err))
	assert.Contains(t, err.Error(), "wrong columns")
}

// ============================================================================
// REPL
// ============================================================================

func TestRepl_Script(t *testing.T) {
	data := writeDataset(t)
	script := strings.Join([]string{
		"income mid",
		"only inland",
		"price 200000",
		"drop inland",
		"add INLAND",
		"frobnicate",
		"none",
		"quit",
		"price 0",
	}, "\n")

	out, err := execute(t, script, "repl", "--data", data)

	require.NoError(t, err)
	assert.Contains(t, out, "6 rows loaded; 2 proximity labels.")
	assert.Contains(t, out, "[$200,000+ | INLAND | mid] 1 record after filtering.")
	assert.Contains(t, out, "[$200,000+ | (none) | mid] No records match the current filters.")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.NotContains(t, out, "[$0+", "commands after quit are not read")
}

func TestRepl_AddIsIdempotent(t *testing.T) {
	script := "only inland\nadd INLAND\nadd inland\nonly inland,INLAND\n"

	out, err := execute(t, script, "repl", "--data", writeDataset(t))

	require.NoError(t, err)
	assert.NotContains(t, out, "INLAND, INLAND")
	assert.Contains(t, out, "| INLAND | low]")
}

func TestRepl_EOFEndsSession(t *testing.T) {
	out, err := execute(t, "help\n", "repl", "--data", writeDataset(t))

	require.NoError(t, err)
	assert.Contains(t, out, "commands:")
}

// ============================================================================
// FACETS, CONFIG, VERSION
// ============================================================================

func TestFacets_JSON(t *testing.T) {
	out, err := execute(t, "", "facets", "--json", "--data", writeDataset(t))

	require.NoError(t, err)
	var f struct {
		Rows        int      `json:"rows"`
		Proximities []string `json:"proximities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &f), out)
	assert.Equal(t, 6, f.Rows, "the row with an empty total_bedrooms is dropped")
	assert.Equal(t, []string{"INLAND", "NEAR BAY"}, f.Proximities)
}

func TestFacets_Text(t *testing.T) {
	out, err := execute(t, "", "facets", "--data", writeDataset(t))

	require.NoError(t, err)
	assert.Contains(t, out, "Ocean proximity")
	assert.Contains(t, out, "$50,000 – $452,600")
}

func TestConfig_PresetFile(t *testing.T) {
	data := writeDataset(t)
	preset := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("data: "+data+"\nincome: high\nproximities: [NEAR BAY]\n"), 0o600))

	out, err := execute(t, "", "--config", preset, "explore", "--min-price", "0", "--format", "json")

	require.NoError(t, err)
	assert.Contains(t, out, `"count":1`)

	out, err = execute(t, "", "--config", preset, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "income: high")
	assert.Contains(t, out, "data: "+data)
}

func TestConfig_InvalidPreset(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("bins: 0\n"), 0o600))

	_, err := execute(t, "", "--config", preset, "version")

	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Equal(t, "housing dev\n", out)
}
