// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// LoginLimiter throttles authentication attempts per client key.
type LoginLimiter interface {
	// Allow records one attempt for the key and reports whether it is within
	// the configured window limit.
	Allow(ctx context.Context, key string) (bool, error)
}
