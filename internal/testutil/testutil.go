// Package testutil holds shared helpers for tests that need a real Redis.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Addresses probed when REDIS_ADDR is unset: the compose service, a local default
// and the port used by the dev compose file.
var candidateAddrs = []string{"redis:6379", "localhost:6379", "localhost:56379"}

// envBool parses common truthy values from env vars.
func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }

func ping(addr string, db int) error {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// findRedis returns the first reachable address, preferring REDIS_ADDR.
func findRedis(t testing.TB) (string, bool) {
	t.Helper()
	addrs := candidateAddrs
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		addrs = []string{addr}
	}
	for _, addr := range addrs {
		if err := ping(addr, 0); err != nil {
			t.Logf("Redis not available at %s: %v", addr, err)
			continue
		}
		return addr, true
	}
	return "", false
}

// selectTestRedisDB picks the DB for this test. TEST_REDIS_DB wins; otherwise a DB in
// [1..15] is reserved with a lock key in DB 0 so parallel packages do not flush each
// other's data. Falls back to DB 1.
func selectTestRedisDB(t testing.TB, addr string) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
		t.Logf("Invalid TEST_REDIS_DB=%q, falling back to auto-select", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr})
	defer meta.Close()

	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for i := 1; i <= 15; i++ {
		lockKey := fmt.Sprintf("esangam:testutil:db_lock:%d", i)
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		ok, err := meta.SetNX(ctx, lockKey, owner, 30*time.Minute).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() { releaseDB(t, addr, lockKey) })
		return i
	}

	t.Logf("Falling back to Redis DB=1 for tests at %s", addr)
	return 1
}

func releaseDB(t testing.TB, addr, lockKey string) {
	c := redis.NewClient(&redis.Options{Addr: addr})
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Del(ctx, lockKey).Err(); err != nil {
		t.Logf("warning: failed to release redis db lock %s: %v", lockKey, err)
	}
}

// SetupTestRedis returns a client on an empty, reserved DB.
// The test is skipped when no Redis is reachable unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	addr, ok := findRedis(t)
	if !ok {
		if requireRedis() {
			t.Fatal("Redis not available for testing")
		}
		t.Skip("Redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: selectTestRedisDB(t, addr)})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush test redis db: %v", err)
	}
	return client
}
