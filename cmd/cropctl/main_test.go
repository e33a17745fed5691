package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/crop-advisor-service/internal/adapter/tablefile"
	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRecommend_Text(t *testing.T) {
	out, _, err := execute(t, "recommend",
		"--soil", "silt", "--temperature", "10", "--rainfall", "800", "--ph", "6", "--location", "Shimla")
	require.NoError(t, err)

	assert.Contains(t, out, "in Shimla with silt soil, 10°C temperature, 800mm rainfall, and pH 6")
	assert.Contains(t, out, "🥔 Potato")
	assert.NotContains(t, out, "Tomato")
	assert.Contains(t, out, "temperature=cold")
}

func TestRecommend_JSON(t *testing.T) {
	out, _, err := execute(t, "recommend", "--json",
		"--soil", "volcanic", "--temperature", "40", "--rainfall", "500", "--ph", "7", "--location", "Nagpur")
	require.NoError(t, err)

	var rec domain.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, rec.CropNames())
	assert.Equal(t, domain.FallbackCategory, rec.Fallback)
	assert.Equal(t, domain.WeatherHot, rec.Weather)
}

func TestRecommend_EmptyResult(t *testing.T) {
	out, _, err := execute(t, "recommend",
		"--soil", "sandy", "--temperature", "38", "--rainfall", "400", "--ph", "8", "--location", "Jaisalmer")
	require.NoError(t, err)
	assert.Contains(t, out, "no crop in the table suits this temperature")
}

func TestRecommend_Invalid(t *testing.T) {
	_, stderr, err := execute(t, "recommend",
		"--soil", "clay", "--temperature", "60", "--rainfall", "500", "--ph", "7", "--location", "Delhi")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConditions)
	assert.Contains(t, stderr, "temperature must be between -10 and 50")
}

func TestRecommend_MissingFlag(t *testing.T) {
	_, _, err := execute(t, "recommend", "--soil", "clay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestRecommend_CustomTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clay:\n  low_rainfall: {}\n"), 0o644))

	out, _, err := execute(t, "recommend", "--table", path,
		"--soil", "clay", "--temperature", "10", "--rainfall", "500", "--ph", "7", "--location", "Pune")
	require.NoError(t, err)

	// Missing leaf: the default list is still temperature filtered.
	assert.Contains(t, out, "Wheat")
	assert.NotContains(t, out, "Rice")
	assert.Contains(t, out, "fallback=leaf")
}

func TestTable_Text(t *testing.T) {
	out, _, err := execute(t, "table")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 37)
	assert.True(t, strings.HasPrefix(lines[0], "SOIL"))
	assert.Contains(t, lines[1], "Rice, Sugarcane, Jute")
}

func TestTable_YAMLRoundTrip(t *testing.T) {
	out, _, err := execute(t, "table", "--yaml")
	require.NoError(t, err)

	table, err := tablefile.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, domain.ReferenceTable().Entries(), table.Entries())
}

func TestGrid_Deterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	_, _, err := execute(t, "grid", "--out", first)
	require.NoError(t, err)
	_, _, err = execute(t, "grid", "--out", second)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var recs []domain.Recommendation
	require.NoError(t, json.Unmarshal(a, &recs))
	require.Len(t, recs, 36*3+3)
	assert.Equal(t, gridIssuedAt, recs[0].IssuedAt)

	for _, rec := range recs {
		assert.LessOrEqual(t, len(rec.Crops), domain.MaxRecommendations)
	}
}
