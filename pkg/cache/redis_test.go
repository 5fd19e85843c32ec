package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// redisURL returns the test server URL or skips the test.
func redisURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("PARALLELSTACKS_REDIS_URL")
	if url == "" {
		t.Skip("PARALLELSTACKS_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{URL: redisURL(t), Prefix: "parallelstacks-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	t.Cleanup(func() { _ = c.Clear(context.Background()) })

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("miss = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("dot"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "dot" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{URL: redisURL(t), Prefix: "parallelstacks-clear:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	for _, k := range []string{"a", "b"} {
		if err := c.Set(ctx, k, []byte(k), time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{URL: "http://localhost"}); err == nil {
		t.Error("expected error for non-redis URL")
	}
}
