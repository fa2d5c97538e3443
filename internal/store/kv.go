package store

import "context"

// KV is the minimal contract this service needs from the external
// replicated key-value store: linearizable per-key reads and writes plus
// an atomic compare-and-swap. Durable commit is implied by a successful
// Put/CompareAndSwap acknowledgment — the store's own replication
// contract applies, this client does not re-verify quorum.
type KV interface {
	// Get returns the value at key. The second return is false when the
	// key is absent; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put writes value at key unconditionally.
	Put(ctx context.Context, key string, value []byte) error

	// CompareAndSwap writes value at key only if the current value equals
	// expected. A nil expected means "key must not exist". Returns false
	// (and no error) when the precondition failed.
	CompareAndSwap(ctx context.Context, key string, expected, value []byte) (bool, error)

	// ListPrefix returns all key-value pairs under prefix.
	ListPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
}
