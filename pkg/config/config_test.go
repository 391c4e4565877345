package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConcepts(t *testing.T) {
	concepts, err := ParseConcepts("dd=Distance & Displacement; sv=Speed & Velocity:20 ;acc", 15)
	require.NoError(t, err)
	assert.Equal(t, []ConceptConfig{
		{Code: "dd", Name: "Distance & Displacement", Problems: 15},
		{Code: "sv", Name: "Speed & Velocity", Problems: 20},
		{Code: "acc", Name: "acc", Problems: 15},
	}, concepts)
}

func TestParseConceptsRejectsBadEntries(t *testing.T) {
	_, err := ParseConcepts("=Nameless", 15)
	require.Error(t, err)

	_, err = ParseConcepts("dd=Distance:lots", 15)
	require.Error(t, err)

	concepts, err := ParseConcepts("", 15)
	require.NoError(t, err)
	assert.Empty(t, concepts)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, parseDuration("30d", 0))
	assert.Equal(t, 90*time.Minute, parseDuration("1h30m", 0))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, time.Duration(0), parseDuration("", 0))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ANALYTICS_WINDOW", "7d")
	t.Setenv("ENABLE_ANALYTICS_CACHE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 7*24*time.Hour, cfg.Analytics.Window)
	assert.Equal(t, 2, cfg.Analytics.MasteryThreshold)
	assert.Equal(t, 15, cfg.Analytics.ProblemsPerConcept)
	assert.True(t, cfg.Analytics.CacheEnabled)
	assert.Equal(t, 2, cfg.Analytics.WarmWorkers)
	require.Len(t, cfg.Analytics.Concepts, 3)
	assert.Equal(t, ConceptConfig{Code: "sv", Name: "Speed & Velocity", Problems: 15}, cfg.Analytics.Concepts[1])
}
