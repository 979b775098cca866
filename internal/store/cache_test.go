package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobezie-workers/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniCache(t *testing.T) (*ScoreCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewScoreCache(client, 10*time.Minute), mr
}

func TestScoreCache_JSONRoundTrip(t *testing.T) {
	cache, mr := newMiniCache(t)
	ctx := context.Background()

	var miss ActivityStats
	found, err := cache.GetJSON(ctx, ActivityKey("user-1"), &miss)
	require.NoError(t, err)
	assert.False(t, found)

	want := ActivityStats{ActiveRecruiters: 6, MessagesThisWeek: 2, ResponseRate: 0.3}
	require.NoError(t, cache.SetJSON(ctx, ActivityKey("user-1"), want))
	assert.Equal(t, 10*time.Minute, mr.TTL(ActivityKey("user-1")))

	var got ActivityStats
	found, err = cache.GetJSON(ctx, ActivityKey("user-1"), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Invalidate(ctx, ActivityKey("user-1")))
	assert.False(t, mr.Exists(ActivityKey("user-1")))
}

func TestScoreCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newMiniCache(t)
	require.NoError(t, mr.Set(SeekerKey("user-1"), "{not json"))

	var s Seeker
	found, err := cache.GetJSON(context.Background(), SeekerKey("user-1"), &s)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScoreCache_Unavailable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewScoreCache(client, time.Minute)

	mock.ExpectGet(SeekerKey("user-1")).SetErr(fmt.Errorf("connection refused"))

	var s Seeker
	_, err := cache.GetJSON(context.Background(), SeekerKey("user-1"), &s)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCacheUnavailable, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreCache_Lock(t *testing.T) {
	cache, mr := newMiniCache(t)
	ctx := context.Background()
	key := RefreshLockKey("user-1")

	first, err := cache.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, time.Minute, mr.TTL(key))

	second, err := cache.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, second, "lock must not be granted twice")

	// A stale holder must not release someone else's lock.
	require.NoError(t, cache.ReleaseLock(ctx, &Lock{Key: key, Token: "stale"}))
	assert.True(t, mr.Exists(key))

	require.NoError(t, cache.ReleaseLock(ctx, first))
	assert.False(t, mr.Exists(key))

	third, err := cache.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, third)
}

func TestScoreCache_LockExpires(t *testing.T) {
	cache, mr := newMiniCache(t)
	ctx := context.Background()
	key := RefreshLockKey("user-2")

	_, err := cache.AcquireLock(ctx, key, time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	again, err := cache.AcquireLock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.NotNil(t, again)
}
