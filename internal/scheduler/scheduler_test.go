package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jon4hz/whispernet/internal/cache"
	"github.com/jon4hz/whispernet/internal/config"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/database/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestRunJobNow(t *testing.T) {
	s := newScheduler(t)

	runs := make(chan struct{}, 4)
	require.NoError(t, s.AddSingletonJob("test", "Test", gocron.DurationJob(time.Hour), func(ctx context.Context) error {
		runs <- struct{}{}
		return nil
	}, false))
	s.Start()

	require.NoError(t, s.RunJobNow("test"))
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	require.Eventually(t, func() bool {
		info, ok := s.GetJob("test")
		return ok && info.Status == JobStatusCompleted && info.RunCount == 1
	}, 5*time.Second, 10*time.Millisecond)

	assert.Error(t, s.RunJobNow("missing"))
}

func TestFailedJob(t *testing.T) {
	s := newScheduler(t)

	require.NoError(t, s.AddSingletonJob("broken", "Broken", gocron.DurationJob(time.Hour), func(ctx context.Context) error {
		return errors.New("nope")
	}, true))
	s.Start()

	require.Eventually(t, func() bool {
		info, _ := s.GetJob("broken")
		return info.Status == JobStatusFailed
	}, 5*time.Second, 10*time.Millisecond)

	info, ok := s.GetJob("broken")
	require.True(t, ok)
	assert.Equal(t, 1, info.ErrorCount)
	assert.Equal(t, "nope", info.LastError)
}

func TestAddWarmCacheJob(t *testing.T) {
	s := newScheduler(t)
	db := mock.NewMockDB()
	require.NoError(t, db.CreateMessage(t.Context(), &database.Message{Content: "hi", Category: "love", IsPublic: true}))

	bc, err := cache.NewBoardCache(&config.CacheConfig{Type: config.CacheTypeMemory}, time.Minute)
	require.NoError(t, err)

	require.NoError(t, s.AddWarmCacheJob(db, bc, time.Hour))
	s.Start()

	require.Eventually(t, func() bool {
		warm, _ := s.GetJob(WarmCacheJobID)
		return warm.Status == JobStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	_, ok := s.GetJob(StatsJobID)
	assert.False(t, ok, "warming does not depend on the stats job")

	// the warmed cache answers without touching the database again
	cached := cache.WrapDB(db, bc)
	messages, err := cached.GetPublicMessages(t.Context())
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, 1, db.CallCount("GetPublicMessages"))
}

func TestAddWarmCacheJob_WithoutCache(t *testing.T) {
	s := newScheduler(t)
	assert.Error(t, s.AddWarmCacheJob(mock.NewMockDB(), nil, time.Hour))
	_, ok := s.GetJob(WarmCacheJobID)
	assert.False(t, ok)
}

func TestAddStatsJob(t *testing.T) {
	s := newScheduler(t)
	db := mock.NewMockDB()

	bc, err := cache.NewBoardCache(&config.CacheConfig{Type: config.CacheTypeMemory}, time.Minute)
	require.NoError(t, err)

	require.NoError(t, s.AddStatsJob(db, bc, time.Hour))
	s.Start()

	require.Eventually(t, func() bool {
		stats, _ := s.GetJob(StatsJobID)
		return stats.Status == JobStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, db.CallCount("GetStats"))
	_, ok := s.GetJob(WarmCacheJobID)
	assert.False(t, ok)
}

func TestAddStatsJob_WithoutCache(t *testing.T) {
	s := newScheduler(t)
	require.NoError(t, s.AddStatsJob(mock.NewMockDB(), nil, time.Hour))

	_, ok := s.GetJob(StatsJobID)
	assert.True(t, ok)
}
