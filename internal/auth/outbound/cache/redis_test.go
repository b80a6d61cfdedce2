package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
)

func newTestRedis(t *testing.T) (*Redis, *redis.Client, *clock.Fixed) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis container test skipped in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	// the fixed clock stays close to real time because redis expires keys on
	// its own clock
	clk := clock.NewFixed(time.Now())

	return NewRedis(client, "otp:", hash.NewHMACSHA256("test-secret"), clk, instrument.NewNoop()), client, clk
}

func TestRedis_SaveFetchDelete(t *testing.T) {
	r, client, clk := newTestRedis(t)
	ctx := context.Background()

	c1 := otpCode("111222", "user@example.com", clk.Now().Add(10*time.Minute))
	c2 := otpCode("333444", "user@example.com", clk.Now().Add(10*time.Minute))

	live, err := r.Save(ctx, c1)
	require.NoError(t, err)
	assert.Equal(t, c1.Code, live.Code)

	live, err = r.Save(ctx, c2)
	require.NoError(t, err)
	assert.Equal(t, c1.Code, live.Code)

	got, err := r.Fetch(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "111222", got.Code)
	assert.True(t, c1.ExpiresAt.Equal(got.ExpiresAt))

	keys, err := client.Keys(ctx, "otp:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "user@example.com")

	ttl, err := client.PTTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 9*time.Minute)

	require.NoError(t, r.Delete(ctx, "user@example.com"))
	require.NoError(t, r.Delete(ctx, "user@example.com"))

	got, err = r.Fetch(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedis_ExpiredCodes(t *testing.T) {
	r, _, clk := newTestRedis(t)
	ctx := context.Background()

	expired := otpCode("111222", "old@example.com", clk.Now().Add(-time.Second))
	live, err := r.Save(ctx, expired)
	require.NoError(t, err)
	assert.Equal(t, expired, live)

	got, err := r.Fetch(ctx, "old@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	c := otpCode("333444", "user@example.com", clk.Now().Add(time.Minute))
	_, err = r.Save(ctx, c)
	require.NoError(t, err)

	clk.Advance(time.Minute + time.Second)
	got, err = r.Fetch(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedis_ClosedClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	r := NewRedis(client, "otp:", hash.NewHMACSHA256("s"), clock.NewFixed(time.Now()), instrument.NewNoop())
	ctx := context.Background()

	_, err := r.Save(ctx, otpCode("111222", "user@example.com", time.Now().Add(time.Minute)))
	assert.Error(t, err)

	_, err = r.Fetch(ctx, "user@example.com")
	assert.Error(t, err)

	_, err = r.Consume(ctx, "user@example.com", "111222")
	assert.Error(t, err)

	assert.Error(t, r.Delete(ctx, "user@example.com"))
}

func TestRedis_SaveReplacesStaleKey(t *testing.T) {
	r, client, clk := newTestRedis(t)
	ctx := context.Background()

	// a record written by an instance whose clock runs ahead: the code is
	// already past its expiry here but the key still has a long TTL
	stale, err := json.Marshal(redisRecord(otpCode("111222", "user@example.com", clk.Now().Add(-time.Minute))))
	require.NoError(t, err)
	require.NoError(t, client.Set(ctx, r.key("user@example.com"), stale, time.Hour).Err())

	fresh := otpCode("333444", "user@example.com", clk.Now().Add(10*time.Minute))
	live, err := r.Save(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "333444", live.Code)

	got, err := r.Fetch(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "333444", got.Code)

	ttl, err := client.PTTL(ctx, r.key("user@example.com")).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestRedis_Consume(t *testing.T) {
	r, _, _ := newTestRedis(t)
	ctx := context.Background()

	_, err := r.Save(ctx, otpCode("111222", "user@example.com", time.Now().Add(time.Minute)))
	require.NoError(t, err)

	ok, err := r.Consume(ctx, "user@example.com", "999999")
	require.NoError(t, err)
	assert.False(t, ok)

	const n = 16
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := r.Consume(ctx, "user@example.com", "111222")
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	got, err := r.Fetch(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
