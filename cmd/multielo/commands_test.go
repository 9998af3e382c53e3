package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AidenDam/Elo-ranking-system/pkg/config"
	"github.com/AidenDam/Elo-ranking-system/pkg/contest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsCommand(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, presetsCommand(&buffer))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"name", "mode", "brackets"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{
		"signed-mirror", "(default)", "mirror", "<2100:32", "<2400:24", "else:16",
	}, strings.Fields(lines[1]))
	assert.True(t, strings.HasPrefix(lines[2], "asymmetric-floor"))
	assert.Contains(t, lines[2], "<800:400")
}

func TestOutputFormat(t *testing.T) {
	cfg, err := config.Process(nil)
	require.NoError(t, err)

	assert.Equal(t, contest.FormatText, outputFormat(cfg, ""))
	assert.Equal(t, contest.FormatYAML, outputFormat(cfg, "yaml"))
}

// useCLI resets the parsed flags for one test and ignores MULTIELO_CONFIG.
func useCLI(t *testing.T) {
	saved := CLI
	t.Cleanup(func() { CLI = saved })
	t.Setenv(config.ENV_VAR, "")
	CLI.Configs = nil
}

func TestRateCommand(t *testing.T) {
	useCLI(t)
	CLI.Rate.Ratings = []float64{1200, 1000}
	CLI.Rate.Format = "json"

	var buffer bytes.Buffer
	require.NoError(t, rateCommand(&buffer))

	var results []contest.Result
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &results))
	require.Len(t, results, 1)
	assert.InDeltaSlice(t, []float64{1207.68809835, 992.31190165}, results[0].Ratings, 1e-6)

	// text output uses the configured precision
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  precision: 2\n"), 0644))
	CLI.Configs = []string{path}
	CLI.Rate.Format = ""

	buffer.Reset()
	require.NoError(t, rateCommand(&buffer))
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"0", "1207.69", "+7.69", "1.00", "0.76"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "992.31", "-7.69", "0.00", "0.24"}, strings.Fields(lines[2]))

	CLI.Rate.Order = []int{1}
	assert.ErrorIs(t, rateCommand(&buffer), contest.ErrMalformed)
}

func TestBatchCommand(t *testing.T) {
	useCLI(t)
	dir := t.TempDir()

	CLI.Batch.File = filepath.Join(dir, "contests.json")
	CLI.Batch.Format = "json"
	require.NoError(t, os.WriteFile(CLI.Batch.File, []byte(`[
  {"ratings": [1200, 1000]},
  {"ratings": [1000, 1100, 1100], "orders": [1, 2, 2]}
]`), 0644))

	var buffer bytes.Buffer
	require.NoError(t, batchCommand(&buffer))

	var results []contest.Result
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &results))
	require.Len(t, results, 2)
	assert.InDeltaSlice(t, []float64{1207.68809835, 992.31190165}, results[0].Ratings, 1e-6)
	require.Len(t, results[1].Outcomes, 3)
	assert.Equal(t, results[1].Ratings[1], results[1].Ratings[2])

	require.NoError(t, os.WriteFile(CLI.Batch.File, []byte("[]"), 0644))
	buffer.Reset()
	assert.ErrorIs(t, batchCommand(&buffer), contest.ErrMalformed)
	assert.Empty(t, buffer.String())

	CLI.Configs = []string{filepath.Join(dir, "missing.yaml")}
	assert.Error(t, batchCommand(&buffer))
}
