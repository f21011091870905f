package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersight/ledgersight/internal/category"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/tmp/test-ledger.db"
	cfg.Categories = []category.Rule{
		{Label: "subscriptions", Keywords: []string{"netflix"}},
	}

	path := filepath.Join(t.TempDir(), "ledgersight.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Database.Path, got.Database.Path)
	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
	assert.Equal(t, cfg.Analytics.MaxRangeDays, got.Analytics.MaxRangeDays)
	assert.Equal(t, cfg.Analytics.ReserveWindowDays, got.Analytics.ReserveWindowDays)
	assert.InDelta(t, cfg.Classification.RecurringCutoff, got.Classification.RecurringCutoff, 0.001)
	assert.InDelta(t, cfg.Classification.Weights.Frequency, got.Classification.Weights.Frequency, 0.001)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "subscriptions", got.Categories[0].Label)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ledgersight.db", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3650, cfg.Analytics.MaxRangeDays)
	assert.Equal(t, 90, cfg.Analytics.ReserveWindowDays)
	assert.InDelta(t, 60.0, cfg.Classification.RecurringCutoff, 0.001)
	assert.InDelta(t, 0.40, cfg.Classification.Weights.Frequency, 0.001)
	assert.InDelta(t, 0.30, cfg.Classification.Weights.Stability, 0.001)
	assert.InDelta(t, 0.20, cfg.Classification.Weights.Activity, 0.001)
	assert.InDelta(t, 0.10, cfg.Classification.Weights.Scale, 0.001)
	assert.Empty(t, cfg.Categories)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRules_FallsBackToDefault(t *testing.T) {
	cfg := Default()
	rules := cfg.Rules()
	assert.Equal(t, "dining", rules.Match("Corner Coffee Shop"))
}

func TestRules_UsesConfigured(t *testing.T) {
	cfg := Default()
	cfg.Categories = []category.Rule{
		{Label: "caffeine", Keywords: []string{"coffee"}},
	}
	rules := cfg.Rules()
	assert.Equal(t, "caffeine", rules.Match("Corner Coffee Shop"))
}
