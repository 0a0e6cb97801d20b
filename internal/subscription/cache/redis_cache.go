// Package cache stores the subscription snapshot in Redis so that dispatches do not hit the
// database on every trigger.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/webhooks/internal/errors"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// RedisClient is the subset of redis.Cmdable used by the cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// storeSnapshotScript writes the snapshot (KEYS[2]) only while the generation counter (KEYS[1])
// still holds ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none. Returns 1 when stored.
const storeSnapshotScript = `
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`

// invalidateScript bumps the generation counter (KEYS[1]) and drops the snapshot (KEYS[2]).
const invalidateScript = `
redis.call('INCR', KEYS[1])
return redis.call('DEL', KEYS[2])
`

// cachedSubscription is the JSON form of a subscription in the cache.
type cachedSubscription struct {
	ID        uuid.UUID `json:"id"`
	TargetURL string    `json:"target_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisSubscriptionCache keeps the full subscription list under a single key with a TTL. A
// generation counter next to it is bumped on every invalidation, so a snapshot loaded before a
// write cannot be stored after it.
type RedisSubscriptionCache struct {
	client        RedisClient
	key           string
	generationKey string
	ttl           time.Duration
}

// NewRedisSubscriptionCache creates a cache storing the snapshot at "<prefix>:subscriptions".
// A zero ttl keeps the entry until it is invalidated.
func NewRedisSubscriptionCache(client RedisClient, prefix string, ttl time.Duration) *RedisSubscriptionCache {
	key := "subscriptions"
	if prefix != "" {
		key = prefix + ":" + key
	}
	return &RedisSubscriptionCache{
		client:        client,
		key:           key,
		generationKey: key + ":generation",
		ttl:           ttl,
	}
}

// Key returns the Redis key holding the snapshot.
func (r *RedisSubscriptionCache) Key() string {
	return r.key
}

// GetAll returns the cached snapshot. A missing key is a miss, not an error.
func (r *RedisSubscriptionCache) GetAll(ctx context.Context) ([]*subscriptionDomain.Subscription, bool, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(err, "failed to read subscription cache")
	}

	var cached []cachedSubscription
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, apperrors.Wrap(err, "failed to decode subscription cache")
	}

	subscriptions := make([]*subscriptionDomain.Subscription, 0, len(cached))
	for _, c := range cached {
		subscriptions = append(subscriptions, &subscriptionDomain.Subscription{
			ID:        c.ID,
			TargetURL: c.TargetURL,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return subscriptions, true, nil
}

// Generation returns the invalidation counter. A counter that was never bumped reads as 0.
func (r *RedisSubscriptionCache) Generation(ctx context.Context) (int64, error) {
	generation, err := r.client.Get(ctx, r.generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, apperrors.Wrap(err, "failed to read subscription cache generation")
	}
	return generation, nil
}

// SetAll stores subscriptions if the cache was not invalidated since generation was read. It
// reports whether the snapshot was stored.
func (r *RedisSubscriptionCache) SetAll(
	ctx context.Context,
	generation int64,
	subscriptions []*subscriptionDomain.Subscription,
) (bool, error) {
	cached := make([]cachedSubscription, 0, len(subscriptions))
	for _, s := range subscriptions {
		cached = append(cached, cachedSubscription{
			ID:        s.ID,
			TargetURL: s.TargetURL,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to encode subscription cache")
	}

	stored, err := r.client.Eval(ctx, storeSnapshotScript,
		[]string{r.generationKey, r.key},
		strconv.FormatInt(generation, 10), data, r.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to write subscription cache")
	}
	return stored == 1, nil
}

// Invalidate drops the cached snapshot and bumps the generation.
func (r *RedisSubscriptionCache) Invalidate(ctx context.Context) error {
	if err := r.client.Eval(ctx, invalidateScript, []string{r.generationKey, r.key}).Err(); err != nil {
		return apperrors.Wrap(err, "failed to invalidate subscription cache")
	}
	return nil
}
