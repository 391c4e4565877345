package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCanonicalisesAndClamps(t *testing.T) {
	engine := NewEngine(nil, Config{})
	zone := time.FixedZone("PHT", 8*3600)
	ended := time.Date(2025, 9, 10, 9, 30, 0, 0, zone)

	attempts, err := engine.Normalize([]RawAttempt{
		{StudentID: " S1 ", ConceptID: "Speed & Velocity", ProblemNo: 4, AttemptsToCorrect: 0, TimeToCorrectMs: -5, EndedAt: &ended, EndedStatus: "Correct"},
		{StudentID: "S2", ConceptID: "projectile", ProblemNo: 1, AttemptsToCorrect: 3, TimeToCorrectMs: 900, EndedAt: &ended},
	})
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, "S1", attempts[0].StudentID)
	assert.Equal(t, "sv", attempts[0].ConceptID)
	assert.Equal(t, 1, attempts[0].AttemptsToCorrect)
	assert.Equal(t, int64(0), attempts[0].TimeToCorrectMs)
	assert.Equal(t, time.UTC, attempts[0].EndedAt.Location())
	assert.Equal(t, EndedStatusCorrect, attempts[0].EndedStatus)
	assert.True(t, attempts[0].FirstTry())

	assert.Equal(t, "projectile", attempts[1].ConceptID)
	assert.Equal(t, 3, attempts[1].AttemptsToCorrect)
}

func TestNormalizeRejectsMissingEndedAt(t *testing.T) {
	engine := NewEngine(nil, Config{})
	ended := time.Now()

	attempts, err := engine.Normalize([]RawAttempt{
		{SessionID: "a", StudentID: "S1", ConceptID: "dd", AttemptsToCorrect: 1, EndedAt: &ended},
		{SessionID: "b", StudentID: "S1", ConceptID: "dd", AttemptsToCorrect: 1},
	})
	require.Error(t, err)
	assert.Nil(t, attempts)
	assert.True(t, errors.Is(err, ErrMalformedRecord))

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, "b", malformed.SessionID)
	assert.Equal(t, "ended_at", malformed.Field)
}

func TestNormalizeEmptyBatch(t *testing.T) {
	engine := NewEngine(nil, Config{})
	attempts, err := engine.Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestParseMetric(t *testing.T) {
	for raw, want := range map[string]Metric{
		"":                  MetricAttempts,
		"Attempts":          MetricAttempts,
		"time":              MetricTime,
		"TimeMs":            MetricTime,
		"attemptsToCorrect": MetricAttempts,
	} {
		got, ok := ParseMetric(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseMetric("accuracy")
	assert.False(t, ok)
}
