package recache

import (
	"context"
	"fmt"
	"strconv"
)

// Counter names. They live in the shared store under <namespace>:<name>,
// so every process wrapping the same computations sees one set of numbers.
const (
	CounterRefresh = "Refresh" // times the wrapped computation was actually invoked
	CounterWait    = "Wait"    // times the computation ran inline in the calling goroutine
	CounterSleep   = "Sleep"   // times a waiting caller slept one poll interval
	CounterFailed  = "Failed"  // times the wrapped computation returned an error
	CounterMissed  = "Missed"  // times no value was found in the cache
	CounterSuccess = "Success" // times a value was found in the cache
	CounterDefault = "Default" // times the default value was substituted
)

// Counters lists every counter, in the order Stats reads them.
var Counters = []string{
	CounterRefresh,
	CounterWait,
	CounterSleep,
	CounterFailed,
	CounterMissed,
	CounterSuccess,
	CounterDefault,
}

// Stats maps counter names to their values. Counters never incremented are
// absent from the map.
type Stats map[string]int64

// Stats reads all counters. With reset they are deleted after reading; the
// read and the deletes are separate store operations, so increments landing
// between them are lost. Good enough for telemetry, not for accounting.
func (cc *cache[V]) Stats(ctx context.Context, reset bool) (Stats, error) {
	out := make(Stats, len(Counters))
	for _, name := range Counters {
		raw, ok, err := cc.store.Get(ctx, cc.counterKey(name))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("recache: counter %s parse: %w", name, err)
		}
		out[name] = n
	}
	if reset {
		if err := cc.ResetStats(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ResetStats deletes all counters without reading them first.
func (cc *cache[V]) ResetStats(ctx context.Context) error {
	for _, name := range Counters {
		if err := cc.store.Del(ctx, cc.counterKey(name)); err != nil {
			return err
		}
	}
	return nil
}

// incr bumps one counter via the store's atomic increment. Store errors
// propagate to the caller on inline paths.
func (cc *cache[V]) incr(ctx context.Context, name string) error {
	_, err := cc.store.Incr(ctx, cc.counterKey(name))
	return err
}

func (cc *cache[V]) counterKey(name string) string { return cc.ns + ":" + name }
