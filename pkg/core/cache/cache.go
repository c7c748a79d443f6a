// Package cache stores rendered responses keyed by a hash of the request that produced
// them. Results are pure functions of the request, so an entry never goes stale for
// correctness; the TTL only bounds memory.
package cache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Repository is the cache contract used by the HTTP handlers.
// A miss and a backend failure both report ok == false.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a cache key from a namespace and the canonical request bytes.
func Key(namespace string, payload []byte) string {
	return "fanchart:" + namespace + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16)
}

// Nop never stores anything
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool) { return "", false }

func (Nop) Set(context.Context, string, string) error { return nil }
