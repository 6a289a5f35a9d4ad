//go:build integration
// +build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"catalog/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
	return "redis://" + endpoint + "/0", cleanup
}

func TestRedisCache_RoundTrip(t *testing.T) {
	url, cleanup := setupRedis(t)
	defer cleanup()
	ctx := context.Background()

	c, err := cache.NewRedisCacheFromURL(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, cache.ProductKey(7), item{ID: 7, Name: "Desk"}, time.Minute))

	var got item
	found, err := c.Get(ctx, cache.ProductKey(7), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Desk", got.Name)

	require.NoError(t, c.Delete(ctx, cache.ProductKey(7)))
	found, err = c.Get(ctx, cache.ProductKey(7), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Expiry(t *testing.T) {
	url, cleanup := setupRedis(t)
	defer cleanup()
	ctx := context.Background()

	c, err := cache.NewRedisCacheFromURL(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "short", "v", 50*time.Millisecond))
	assert.Eventually(t, func() bool {
		var s string
		found, err := c.Get(ctx, "short", &s)
		return err == nil && !found
	}, 2*time.Second, 20*time.Millisecond)
}

func TestNewRedisCacheFromURL_BadURL(t *testing.T) {
	_, err := cache.NewRedisCacheFromURL(context.Background(), "not-a-url")
	assert.Error(t, err)
}
