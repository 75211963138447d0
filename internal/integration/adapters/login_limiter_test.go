// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLimiterFixture(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

func TestLoginLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows attempts up to the limit", func(t *testing.T) {
		_, client := newLimiterFixture(t)
		limiter := NewLoginLimiter(client, 5, time.Minute)

		for i := 0; i < 5; i++ {
			allowed, err := limiter.Allow(ctx, "budi")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !allowed {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
		}

		allowed, err := limiter.Allow(ctx, "budi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Error("attempt over the limit should be denied")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		_, client := newLimiterFixture(t)
		limiter := NewLoginLimiter(client, 1, time.Minute)

		if allowed, _ := limiter.Allow(ctx, "budi"); !allowed {
			t.Fatal("first attempt for budi should be allowed")
		}
		if allowed, _ := limiter.Allow(ctx, "budi"); allowed {
			t.Fatal("second attempt for budi should be denied")
		}
		if allowed, _ := limiter.Allow(ctx, "siti"); !allowed {
			t.Error("first attempt for siti should be allowed")
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		server, client := newLimiterFixture(t)
		limiter := NewLoginLimiter(client, 1, time.Minute)

		if allowed, _ := limiter.Allow(ctx, "budi"); !allowed {
			t.Fatal("first attempt should be allowed")
		}
		if allowed, _ := limiter.Allow(ctx, "budi"); allowed {
			t.Fatal("second attempt should be denied")
		}

		server.FastForward(2 * time.Minute)

		if allowed, _ := limiter.Allow(ctx, "budi"); !allowed {
			t.Error("attempt after window expiry should be allowed")
		}
	})
}
