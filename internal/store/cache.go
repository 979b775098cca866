package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"jobezie-workers/internal/common/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jobezie:"

func SeekerKey(userID string) string { return keyPrefix + "seeker:" + userID }
func ActivityKey(userID string) string { return keyPrefix + "activity:" + userID }
func RefreshLockKey(userID string) string { return keyPrefix + "lock:refresh:" + userID }
func ReminderLockKey(recruiterID string) string { return keyPrefix + "lock:reminder:" + recruiterID }

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ScoreCache holds scoring inputs that are expensive to aggregate and the
// per-user locks that serialize batch refreshes.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

// GetJSON reports whether key was present and decoded into dest. A corrupt
// entry counts as a miss.
func (c *ScoreCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.NewCacheUnavailableError(err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *ScoreCache) SetJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}

func (c *ScoreCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}

// Lock is a held SET NX lock.
type Lock struct {
	Key   string
	Token string
}

// AcquireLock takes key for ttl. It returns nil without error when another
// holder already has it.
func (c *ScoreCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, errors.NewCacheUnavailableError(err)
	}
	if !ok {
		return nil, nil
	}
	return &Lock{Key: key, Token: token}, nil
}

// ReleaseLock frees the lock if it has not expired and been taken over.
func (c *ScoreCache) ReleaseLock(ctx context.Context, lock *Lock) error {
	if lock == nil {
		return nil
	}
	if err := releaseScript.Run(ctx, c.client, []string{lock.Key}, lock.Token).Err(); err != nil && !stderrors.Is(err, redis.Nil) {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}
