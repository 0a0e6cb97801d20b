package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// fakeRedis is an in-memory RedisClient that runs the cache's two scripts natively.
type fakeRedis struct {
	mu       sync.Mutex
	values   map[string][]byte
	ttls     map[string]time.Duration
	failGet  error
	failEval error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: make(map[string][]byte),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(value), nil)
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEval != nil {
		return redis.NewCmdResult(nil, f.failEval)
	}

	generation := "0"
	if raw, ok := f.values[keys[0]]; ok {
		generation = string(raw)
	}

	switch script {
	case storeSnapshotScript:
		if generation != args[0].(string) {
			return redis.NewCmdResult(int64(0), nil)
		}
		f.values[keys[1]] = args[1].([]byte)
		f.ttls[keys[1]] = time.Duration(args[2].(int64)) * time.Millisecond
		return redis.NewCmdResult(int64(1), nil)
	case invalidateScript:
		n, _ := strconv.ParseInt(generation, 10, 64)
		f.values[keys[0]] = []byte(strconv.FormatInt(n+1, 10))
		_, existed := f.values[keys[1]]
		delete(f.values, keys[1])
		if existed {
			return redis.NewCmdResult(int64(1), nil)
		}
		return redis.NewCmdResult(int64(0), nil)
	}
	return redis.NewCmdResult(nil, fmt.Errorf("unexpected script %q", script))
}

func sampleSubscriptions() []*subscriptionDomain.Subscription {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*subscriptionDomain.Subscription{
		{ID: uuid.Must(uuid.NewV7()), TargetURL: "https://a.example.com", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.Must(uuid.NewV7()), TargetURL: "https://a.example.com", CreatedAt: now, UpdatedAt: now},
	}
}

func TestNewRedisSubscriptionCache_Key(t *testing.T) {
	assert.Equal(t, "webhooks:subscriptions", NewRedisSubscriptionCache(newFakeRedis(), "webhooks", 0).Key())
	assert.Equal(t, "subscriptions", NewRedisSubscriptionCache(newFakeRedis(), "", 0).Key())
}

func TestRedisSubscriptionCache_Miss(t *testing.T) {
	c := NewRedisSubscriptionCache(newFakeRedis(), "webhooks", time.Hour)

	subscriptions, ok, err := c.GetAll(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, subscriptions)
}

func TestRedisSubscriptionCache_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	c := NewRedisSubscriptionCache(client, "webhooks", time.Hour)
	ctx := context.Background()
	expected := sampleSubscriptions()

	stored, err := c.SetAll(ctx, 0, expected)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, time.Hour, client.ttls["webhooks:subscriptions"])

	subscriptions, ok, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, subscriptions, 2)
	for i := range expected {
		assert.Equal(t, expected[i].ID, subscriptions[i].ID)
		assert.Equal(t, expected[i].TargetURL, subscriptions[i].TargetURL)
		assert.True(t, expected[i].CreatedAt.Equal(subscriptions[i].CreatedAt))
	}
}

func TestRedisSubscriptionCache_EmptySnapshotIsAHit(t *testing.T) {
	c := NewRedisSubscriptionCache(newFakeRedis(), "webhooks", time.Hour)
	ctx := context.Background()

	_, err := c.SetAll(ctx, 0, nil)
	require.NoError(t, err)

	subscriptions, ok, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, subscriptions)
}

func TestRedisSubscriptionCache_Invalidate(t *testing.T) {
	client := newFakeRedis()
	c := NewRedisSubscriptionCache(client, "webhooks", time.Hour)
	ctx := context.Background()

	_, err := c.SetAll(ctx, 0, sampleSubscriptions())
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// invalidating an absent key is not an error
	assert.NoError(t, c.Invalidate(ctx))

	generation, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), generation)
}

func TestRedisSubscriptionCache_StaleSnapshotIsNotStored(t *testing.T) {
	c := NewRedisSubscriptionCache(newFakeRedis(), "webhooks", time.Hour)
	ctx := context.Background()

	generation, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, generation)

	// a write lands between loading the snapshot and storing it
	require.NoError(t, c.Invalidate(ctx))

	stored, err := c.SetAll(ctx, generation, nil)
	require.NoError(t, err)
	assert.False(t, stored)

	_, ok, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	stored, err = c.SetAll(ctx, current, sampleSubscriptions())
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestRedisSubscriptionCache_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		client := newFakeRedis()
		client.failGet = assert.AnError
		_, ok, err := NewRedisSubscriptionCache(client, "webhooks", time.Hour).GetAll(ctx)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, ok)
	})

	t.Run("corrupt value", func(t *testing.T) {
		client := newFakeRedis()
		client.values["webhooks:subscriptions"] = []byte("{not json")
		_, ok, err := NewRedisSubscriptionCache(client, "webhooks", time.Hour).GetAll(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode subscription cache")
		assert.False(t, ok)
	})

	t.Run("generation", func(t *testing.T) {
		client := newFakeRedis()
		client.failGet = assert.AnError
		_, err := NewRedisSubscriptionCache(client, "webhooks", time.Hour).Generation(ctx)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("set", func(t *testing.T) {
		client := newFakeRedis()
		client.failEval = assert.AnError
		stored, err := NewRedisSubscriptionCache(client, "webhooks", time.Hour).SetAll(ctx, 0, sampleSubscriptions())
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, stored)
	})

	t.Run("invalidate", func(t *testing.T) {
		client := newFakeRedis()
		client.failEval = assert.AnError
		err := NewRedisSubscriptionCache(client, "webhooks", time.Hour).Invalidate(ctx)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

// TestRedisSubscriptionCache_RealRedis runs against a live server when TEST_REDIS_ADDR is set.
func TestRedisSubscriptionCache_RealRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	c := NewRedisSubscriptionCache(client, "webhooks-test-"+uuid.NewString(), time.Minute)
	t.Cleanup(func() { _ = client.Del(context.Background(), c.Key(), c.Key()+":generation").Err() })

	generation, err := c.Generation(ctx)
	require.NoError(t, err)

	stored, err := c.SetAll(ctx, generation, sampleSubscriptions())
	require.NoError(t, err)
	require.True(t, stored)

	subscriptions, ok, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, subscriptions, 2)

	ttl, err := client.TTL(ctx, c.Key()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx))
	stored, err = c.SetAll(ctx, generation, sampleSubscriptions())
	require.NoError(t, err)
	assert.False(t, stored)
}
