package cache

import (
	"log/slog"

	"github.com/tobantal/cachekit/expiry"
	"github.com/tobantal/cachekit/policy"
)

// Options configures a Basic cache. Zero values are safe; defaults are
// applied in New:
//   - nil Eviction => LRU
//   - nil Expiry   => no expiration
//   - nil Logger   => slog.Default()
type Options[K comparable, V any] struct {
	// Capacity is the entry limit. Must be > 0; New panics otherwise.
	Capacity int

	// Eviction picks victims on overflow. The cache takes exclusive
	// ownership: never share one policy instance between caches.
	Eviction policy.Eviction[K]

	// Expiry assigns per-key deadlines. Exclusively owned, like
	// Eviction.
	Expiry expiry.Policy[K]

	// Logger reports recovered listener panics. The hot path never
	// logs.
	Logger *slog.Logger
}
