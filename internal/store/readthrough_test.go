package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobezie-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls  int
	seeker *Seeker
	stats  ActivityStats
	err    error
}

func (s *countingSource) GetSeeker(_ context.Context, _ string) (*Seeker, error) {
	s.calls++
	return s.seeker, s.err
}

func (s *countingSource) GetActivityStats(_ context.Context, _ string, _ time.Time) (ActivityStats, error) {
	s.calls++
	return s.stats, s.err
}

func TestScoreCache_SeekerReadThrough(t *testing.T) {
	cache, mr := newMiniCache(t)
	score := 72
	src := &countingSource{seeker: &Seeker{
		UserID:      "user-1",
		Profile:     scoring.SeekerProfile{FullName: "Alex Kim", Industries: []string{"fintech"}},
		CareerStage: scoring.CareerSenior,
		HasResume:   true,
		ResumeScore: &score,
	}}
	ctx := context.Background()

	first, err := cache.Seeker(ctx, "user-1", src)
	require.NoError(t, err)
	assert.True(t, mr.Exists(SeekerKey("user-1")))

	second, err := cache.Seeker(ctx, "user-1", src)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first, second)
}

func TestScoreCache_SeekerErrorNotCached(t *testing.T) {
	cache, mr := newMiniCache(t)
	src := &countingSource{err: fmt.Errorf("boom")}

	_, err := cache.Seeker(context.Background(), "user-1", src)
	require.Error(t, err)
	assert.False(t, mr.Exists(SeekerKey("user-1")))
}

func TestScoreCache_ActivityFallsThroughWhenRedisDown(t *testing.T) {
	cache, mr := newMiniCache(t)
	mr.Close()
	src := &countingSource{stats: ActivityStats{ActiveRecruiters: 3}}

	stats, err := cache.Activity(context.Background(), "user-1", testNow, src)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.ActiveRecruiters)
	assert.Equal(t, 1, src.calls)
}

func TestScoreCache_NilCacheReadsSource(t *testing.T) {
	var cache *ScoreCache
	src := &countingSource{stats: ActivityStats{MessagesThisWeek: 4}}

	stats, err := cache.Activity(context.Background(), "user-1", testNow, src)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.MessagesThisWeek)
}
