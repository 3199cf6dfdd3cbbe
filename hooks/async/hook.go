// Package asynchook decouples hook sinks from the coordinator's hot path.
// Events are queued to a bounded channel and delivered by worker
// goroutines; when the queue is full, events are dropped rather than
// blocking a cache call.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ContentionEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/recache-dev/recache"
)

type Hooks struct {
	inner recache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ recache.Hooks = (*Hooks)(nil)

func New(inner recache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ComputeFailed(k string, err error) {
	h.try(func() { h.inner.ComputeFailed(k, err) })
}
func (h *Hooks) DetachedWriteFailed(k string, err error) {
	h.try(func() { h.inner.DetachedWriteFailed(k, err) })
}
func (h *Hooks) WaitAborted(k, reason string) { h.try(func() { h.inner.WaitAborted(k, reason) }) }
func (h *Hooks) LockContended(k string)       { h.try(func() { h.inner.LockContended(k) }) }
