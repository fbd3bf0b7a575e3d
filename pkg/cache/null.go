package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. The runner gets one for --no-cache and for the
// "none" backend, so every layout and artifact is computed fresh.
type NullCache struct{}

// NewNullCache returns a cache where every lookup misses.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

// Clear reports zero removed entries.
func (NullCache) Clear(context.Context) (int, error) { return 0, nil }

func (NullCache) Close() error { return nil }

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
