// Package memory implements store.Store as an in-process map. There is no
// cross-process coordination here: it suits tests and single-process
// deployments where the refresh protocol only has to arbitrate between
// goroutines.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	st "github.com/recache-dev/recache/store"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

// Store is a map-backed store with lazy expiry on read plus an optional
// janitor goroutine that actively sweeps expired entries.
type Store struct {
	mu sync.RWMutex
	m  map[string]entry

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ st.Store = (*Store)(nil)

// New builds a memory store. sweepInterval > 0 starts a janitor that removes
// expired entries every interval; <= 0 relies on expiry-on-read alone.
func New(sweepInterval time.Duration) *Store {
	s := &Store{m: make(map[string]entry)}
	if sweepInterval > 0 {
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					s.deleteExpired()
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		s.mu.Lock()
		// re-check under the write lock; a concurrent Set may have renewed it
		if cur, ok := s.m[key]; ok && cur.expired(time.Now()) {
			delete(s.m, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	// hand out a copy; a caller mutating the result must not corrupt the entry
	out := make([]byte, len(e.v))
	copy(out, e.v)
	return out, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.m[key] = entry{v: value, exp: deadline(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *Store) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.m[key]; ok && !e.expired(now) {
		return false, nil
	}
	s.m[key] = entry{v: value, exp: deadline(ttl)}
	return true, nil
}

// Incr matches Redis INCR semantics: absent counters start at 0, existing
// values must parse as base-10 integers, and the entry's TTL is preserved.
func (s *Store) Incr(_ context.Context, key string) (int64, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	exp := time.Time{}
	if e, ok := s.m[key]; ok && !e.expired(now) {
		cur, err := strconv.ParseInt(string(e.v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("memory: value at %q is not an integer", key)
		}
		n = cur
		exp = e.exp
	}
	n++
	s.m[key] = entry{v: []byte(strconv.FormatInt(n, 10)), exp: exp}
	return n, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

// Close stops the janitor, if any. Safe to call multiple times.
func (s *Store) Close(context.Context) error {
	s.once.Do(func() {
		if s.stopCh != nil {
			close(s.stopCh)
			s.wg.Wait()
		}
	})
	return nil
}

// Len reports the number of live entries. Intended for tests.
func (s *Store) Len() int {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.m {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

func (s *Store) deleteExpired() {
	now := time.Now()
	s.mu.Lock()
	for k, e := range s.m {
		if e.expired(now) {
			delete(s.m, k)
		}
	}
	s.mu.Unlock()
}

func (e entry) expired(now time.Time) bool {
	return !e.exp.IsZero() && now.After(e.exp)
}

func deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}
