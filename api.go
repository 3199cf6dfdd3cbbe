package recache

import (
	"context"
	"time"

	c "github.com/recache-dev/recache/codec"
	st "github.com/recache-dev/recache/store"
)

// Func is a wrapped computation. It receives the call's arguments and
// produces the value to cache. An error return never reaches the wrapper's
// caller directly; the recompute procedure collapses it into the policy's
// Default (see Policy).
type Func[V any] func(ctx context.Context, call Call) (V, error)

// Call carries a computation's arguments. Kwargs is an ordered list, not a
// map: keyword order is part of the derived cache key.
type Call struct {
	Args   []any
	Kwargs []KV
}

// KV is a single named argument.
type KV struct {
	Name  string
	Value any
}

// Cache wraps computations with refresh-ahead, stale-while-revalidate
// semantics over a shared store. V is the computation result type;
// serialization is handled by a pluggable Codec[V].
type Cache[V any] interface {
	Enabled() bool
	Close(ctx context.Context) error

	// Wrap binds fn to a caching policy under the given computation name.
	// The name participates in key derivation, so it must be stable across
	// processes sharing the store.
	Wrap(name string, fn Func[V], p Policy[V]) *Wrapped[V]

	// Stats reads the coordinator's counters from the store. With reset,
	// counters are deleted after reading; read and delete are two separate
	// store operations, so increments landing between them are lost.
	Stats(ctx context.Context, reset bool) (Stats, error)

	// ResetStats deletes all counters without reading them first.
	ResetStats(ctx context.Context) error
}

// Policy tunes one wrapped computation.
type Policy[V any] struct {
	// Refresh is how long a cached value is served before a recompute
	// becomes due. Expire is how long it is served at all; it should exceed
	// Refresh or the stale-serving window collapses to nothing.
	Refresh time.Duration
	Expire  time.Duration

	// Retry bounds how long an in-flight refresh blocks further refresh
	// attempts. 0 => Refresh. A refresh running longer than this can be
	// shadowed by a second one; last write wins at the store.
	Retry time.Duration

	// Default is returned (and cached on computation failure) when no
	// usable value exists. It must be representable by the codec.
	Default V

	// Wait makes a call with an empty cache block for a real value instead
	// of returning Default.
	Wait bool

	// UseArgs / UseKwargs restrict which positional indices / keyword names
	// participate in the cache key. Empty means all of them.
	UseArgs   []int
	UseKwargs []string

	// Codec overrides the cache-level codec for this computation.
	Codec c.Codec[V]
}

// Options tune the cache. Namespace, Store and Codec are required; the rest
// have sensible defaults.
type Options[V any] struct {
	// Namespace prefixes cache keys, refresh locks and stats counters so
	// several caches can share one store. e.g. "quotes", "geo".
	Namespace string
	Store     st.Store
	Codec     c.Codec[V]

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// PollInterval is the wait-loop granularity. 0 => 1s.
	PollInterval time.Duration

	// Workers / QueueLen size the detached-refresh pool. 0 => 4 / 256.
	Workers  int
	QueueLen int

	// Disabled bypasses the store entirely: wrapped computations are called
	// directly and no counters move.
	Disabled bool
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
