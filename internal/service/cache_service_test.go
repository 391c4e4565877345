package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingCacheRepo struct{}

func (failingCacheRepo) Get(context.Context, string, interface{}) error {
	return errors.New("redis down")
}

func (failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis down")
}

func (failingCacheRepo) DeleteByPattern(context.Context, string) (int, error) {
	return 0, errors.New("redis down")
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := &stubCacheRepo{}
	svc := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	svc.Set(ctx, "k", 1, 0)
	var dest int
	assert.False(t, svc.Get(ctx, "k", &dest))
	assert.Empty(t, repo.store)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	assert.False(t, nilSvc.Get(ctx, "k", &dest))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(&stubCacheRepo{}, metrics, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	var dest []float64
	assert.False(t, svc.Get(ctx, "k", &dest))
	svc.Set(ctx, "k", []float64{1.5, 3}, 0)
	require.True(t, svc.Get(ctx, "k", &dest))
	assert.Equal(t, []float64{1.5, 3}, dest)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 1e-9)
}

func TestCacheServiceDegradesOnBackendErrors(t *testing.T) {
	svc := NewCacheService(failingCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	var dest int
	assert.False(t, svc.Get(ctx, "k", &dest))
	svc.Set(ctx, "k", 1, 0)
	_, err := svc.Invalidate(ctx, "analytics:*")
	assert.Error(t, err)
}
