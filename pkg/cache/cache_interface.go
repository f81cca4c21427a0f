package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer, so Redis can be swapped for
// another implementation (or the no-op cache) without touching repositories.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (marshalled to JSON unless already a string) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}

// Noop is a Cache that never stores anything. Every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
