package recache

import (
	"context"
	"fmt"
	"time"

	c "github.com/recache-dev/recache/codec"
	st "github.com/recache-dev/recache/store"
)

type cache[V any] struct {
	ns      string
	store   st.Store
	codec   c.Codec[V]
	log     Logger
	hooks   Hooks
	enabled bool
	poll    time.Duration
	pool    *refreshPool
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("recache: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("recache: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("recache: namespace is required")
	}

	cc := &cache[V]{
		ns:      opts.Namespace,
		store:   opts.Store,
		codec:   opts.Codec,
		enabled: !opts.Disabled,
	}

	// defaults
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cc.poll = coalesce[time.Duration](opts.PollInterval, time.Second)
	cc.pool = newRefreshPool(coalesce(opts.Workers, 4), coalesce(opts.QueueLen, 256))

	return cc, nil
}

func (cc *cache[V]) Enabled() bool { return cc.enabled }

func (cc *cache[V]) Close(ctx context.Context) error {
	// Drain queued detached refreshes first so their writes are not cut off
	// mid-flight, then release the store.
	if cc.pool != nil {
		cc.pool.close()
	}
	if cc.store != nil {
		return cc.store.Close(ctx)
	}
	return nil
}

func (cc *cache[V]) Wrap(name string, fn Func[V], p Policy[V]) *Wrapped[V] {
	if p.Retry <= 0 {
		p.Retry = p.Refresh
	}
	cd := p.Codec
	if cd == nil {
		cd = cc.codec
	}
	return &Wrapped[V]{
		Unwrapped: fn,
		name:      name,
		cache:     cc,
		policy:    p,
		codec:     cd,
	}
}

// storageKey scopes a derived computation key to this cache's namespace.
func (cc *cache[V]) storageKey(derived string) string {
	return cc.ns + ":" + derived
}
