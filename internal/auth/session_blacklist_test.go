package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestAddToBlacklist(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, store.AddToBlacklist(context.Background(), "test-token", exp))

	store.mu.RLock()
	expTime, exists := store.blacklist["test-token"]
	store.mu.RUnlock()

	assert.True(t, exists)
	assert.Equal(t, exp, expTime)
}

func TestIsBlacklisted(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	ctx := context.Background()

	isBlacklisted, err := store.IsBlacklisted(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)

	require.NoError(t, store.AddToBlacklist(ctx, "known", time.Now().Add(time.Hour)))
	isBlacklisted, err = store.IsBlacklisted(ctx, "known")
	require.NoError(t, err)
	assert.True(t, isBlacklisted)
}

func TestCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.AddToBlacklist(ctx, "expired-1", time.Now().Add(-time.Hour)))
	require.NoError(t, store.AddToBlacklist(ctx, "expired-2", time.Now().Add(-time.Minute)))
	require.NoError(t, store.AddToBlacklist(ctx, "valid", time.Now().Add(time.Hour)))

	store.CleanUpExpired()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Len(t, store.blacklist, 1)
	assert.Contains(t, store.blacklist, "valid")
}

func TestCloseIsIdempotent(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	assert.NotPanics(t, func() {
		store.Close()
		store.Close()
	})
}

func TestConcurrentAccess(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, store.AddToBlacklist(ctx, fmt.Sprintf("token-%d", id), exp))
		}(i)
		go func(id int) {
			defer wg.Done()
			_, err := store.IsBlacklisted(ctx, fmt.Sprintf("token-%d", id))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	store.mu.RLock()
	assert.Len(t, store.blacklist, 20)
	store.mu.RUnlock()
}

func TestRedisBlacklistStore(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisBlacklistStore(client)

	isBlacklisted, err := store.IsBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)

	require.NoError(t, store.AddToBlacklist(ctx, "tok", time.Now().Add(time.Minute)))
	isBlacklisted, err = store.IsBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, isBlacklisted)

	ttl, err := client.TTL(ctx, "onestop:jwt-blacklist:tok").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	// already expired tokens are not stored
	require.NoError(t, store.AddToBlacklist(ctx, "old", time.Now().Add(-time.Second)))
	isBlacklisted, err = store.IsBlacklisted(ctx, "old")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}
