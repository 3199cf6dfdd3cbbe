package recache

import (
	"context"
	"time"

	c "github.com/recache-dev/recache/codec"
)

// Wrapped is a computation bound to a caching policy. Concurrent Call /
// CallKV invocations are safe, within this process and across any number of
// processes sharing the store: the store's conditional-set is the only
// synchronization point.
type Wrapped[V any] struct {
	// Unwrapped is the original computation, exposed for direct-call bypass.
	Unwrapped Func[V]

	name   string
	cache  *cache[V]
	policy Policy[V]
	codec  c.Codec[V]
}

// Call invokes the wrapped computation with positional arguments only.
func (w *Wrapped[V]) Call(ctx context.Context, args ...any) (V, error) {
	return w.CallKV(ctx, Call{Args: args})
}

// CallKV runs one coordinated invocation:
//
//  1. read the cached value;
//  2. try to win the refresh lock (SetNX with the retry TTL); the winner
//     either dispatches a detached recompute, or, with Wait set and an empty
//     cache, recomputes inline;
//  3. losers with Wait set poll until a value appears or the lock expires;
//  4. whoever still has nothing gets the policy Default.
//
// Errors returned by CallKV are store (or codec) errors only; computation
// failures are absorbed by the recompute procedure and observable through
// the Failed/Default counters, hooks and logs.
func (w *Wrapped[V]) CallKV(ctx context.Context, call Call) (V, error) {
	cc := w.cache
	if !cc.enabled {
		// direct call: no store interaction, no stats
		return w.Unwrapped(ctx, call)
	}

	var zero V
	key := cc.storageKey(buildKey(w.name, call, w.policy.UseArgs, w.policy.UseKwargs))

	raw, ok, err := cc.store.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		err = cc.incr(ctx, CounterSuccess)
	} else {
		err = cc.incr(ctx, CounterMissed)
	}
	if err != nil {
		return zero, err
	}

	// Admission gate: the lock's presence means a refresh is in flight or
	// not yet due. Winning the conditional set admits exactly one party
	// system-wide per retry window.
	admitted, err := cc.store.SetNX(ctx, lockKey(key), lockValue, w.policy.Retry)
	if err != nil {
		return zero, err
	}
	if admitted {
		if ok || !w.policy.Wait {
			// serve what we have; the recompute is fire-and-forget
			w.dispatchRefresh(ctx, key, call)
		} else {
			if err := cc.incr(ctx, CounterWait); err != nil {
				return zero, err
			}
			v, err := w.refreshValue(ctx, key, call)
			if err != nil {
				return zero, err
			}
			return v, nil
		}
	} else {
		cc.hooks.LockContended(key)
	}

	if !ok && w.policy.Wait {
		raw, ok, err = w.waitForValue(ctx, key)
		if err != nil {
			return zero, err
		}
	}

	if !ok {
		if err := cc.incr(ctx, CounterDefault); err != nil {
			return zero, err
		}
		return w.policy.Default, nil
	}
	return w.codec.Decode(raw)
}

// waitForValue polls the store until the value appears or the refresh lock
// disappears, whichever comes first. The lock's TTL therefore bounds the
// worst-case wait. Cancellation stops polling locally; it cannot stop a
// remote in-flight recompute, so the caller falls back to Default.
func (w *Wrapped[V]) waitForValue(ctx context.Context, key string) ([]byte, bool, error) {
	cc := w.cache
	for {
		_, held, err := cc.store.Get(ctx, lockKey(key))
		if err != nil {
			return nil, false, err
		}
		if !held {
			cc.hooks.WaitAborted(key, WaitLockExpired)
			return nil, false, nil
		}
		if err := cc.incr(ctx, CounterSleep); err != nil {
			return nil, false, err
		}
		select {
		case <-ctx.Done():
			cc.hooks.WaitAborted(key, WaitCanceled)
			return nil, false, nil
		case <-time.After(cc.poll):
		}
		raw, ok, err := cc.store.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return raw, true, nil
		}
	}
}

// dispatchRefresh hands the recompute to the pool. Completion is invisible
// to the triggering call; failures are reported via hooks, logs and the
// Failed counter only. The parent context's cancellation is stripped so a
// caller timeout cannot kill the write mid-flight.
func (w *Wrapped[V]) dispatchRefresh(ctx context.Context, key string, call Call) {
	bg := context.WithoutCancel(ctx)
	w.cache.pool.submit(func() {
		if _, err := w.refreshValue(bg, key, call); err != nil {
			w.cache.hooks.DetachedWriteFailed(key, err)
			w.cache.log.Error("detached refresh failed", Fields{"key": key, "err": err})
		}
	})
}

// refreshValue is the recompute procedure, shared by the inline and
// detached paths: run the computation, substitute Default on failure, store
// the result with the expire TTL, then re-arm the refresh lock with the
// refresh TTL so the next recompute is not due until a full refresh window
// after this one finished.
func (w *Wrapped[V]) refreshValue(ctx context.Context, key string, call Call) (V, error) {
	cc := w.cache

	var zero V
	if err := cc.incr(ctx, CounterRefresh); err != nil {
		return zero, err
	}

	v, computeErr := w.Unwrapped(ctx, call)
	if computeErr != nil {
		cc.hooks.ComputeFailed(key, computeErr)
		cc.log.Error("wrapped computation failed", Fields{"key": key, "err": computeErr})
		if err := cc.incr(ctx, CounterFailed); err != nil {
			return zero, err
		}
		if err := cc.incr(ctx, CounterDefault); err != nil {
			return zero, err
		}
		// maybe next time it will work; cache the substitute meanwhile
		v = w.policy.Default
	}

	b, err := w.codec.Encode(v)
	if err != nil {
		return v, &RefreshError{Key: key, ComputeErr: computeErr, StoreErr: err}
	}
	if err := cc.store.Set(ctx, key, b, w.policy.Expire); err != nil {
		return v, &RefreshError{Key: key, ComputeErr: computeErr, StoreErr: err}
	}
	if err := cc.store.Set(ctx, lockKey(key), lockValue, w.policy.Refresh); err != nil {
		return v, &RefreshError{Key: key, ComputeErr: computeErr, StoreErr: err}
	}
	return v, nil
}
