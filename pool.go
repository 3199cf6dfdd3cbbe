package recache

import "sync"

// refreshPool runs detached recomputes on a fixed set of workers behind a
// bounded queue. When the queue is full, submit falls back to a dedicated
// goroutine rather than dropping the task: the caller already holds the
// refresh lock, so a dropped recompute would leave the key stale until the
// lock TTLs out.
type refreshPool struct {
	mu     sync.RWMutex
	q      chan func()
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

func newRefreshPool(workers, qlen int) *refreshPool {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1
	}

	p := &refreshPool{q: make(chan func(), qlen)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for f := range p.q {
				f()
			}
		}()
	}
	return p
}

// submit never blocks and never drops. A submit racing close, or arriving
// after it, runs the task on its own goroutine instead of the queue.
func (p *refreshPool) submit(f func()) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		go f()
		return
	}
	select {
	case p.q <- f:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		go f()
	}
}

// close drains queued tasks and waits for the workers. Overflow and
// post-close goroutines are not tracked; they finish on their own.
func (p *refreshPool) close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.q)
		p.mu.Unlock()
		p.wg.Wait()
	})
}
