// Package ristretto adapts dgraph-io/ristretto to store.Store for
// single-process use. Ristretto has no conditional write or counter
// primitive, so SetNX and Incr are serialized behind a mutex; that is only
// atomic within this process, which is exactly the scope an in-process
// store can promise anyway.
//
// Ristretto's admission policy may decline or evict entries under memory
// pressure. A declined lock write surfaces as created=false, which the
// coordinator treats as "someone else holds the lock" and degrades to
// serving stale/default values. Prefer the redis store when multiple
// processes share the cache.
package ristretto

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/recache-dev/recache/store"
)

type Store struct {
	c *rc.Cache

	// guards SetNX and Incr read-modify-write sequences
	mu sync.Mutex
}

var _ st.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		// drop unexpected entry shape
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.put(key, value, ttl)
	return nil
}

func (s *Store) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.c.Get(key); ok {
		return false, nil
	}
	return s.put(key, value, ttl), nil
}

func (s *Store) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if v, ok := s.c.Get(key); ok {
		b, _ := v.([]byte)
		cur, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return 0, errors.New("ristretto: value at " + key + " is not an integer")
		}
		n = cur
	}
	n++
	// counters carry no TTL; they live until reset or eviction
	s.put(key, []byte(strconv.FormatInt(n, 10)), 0)
	return n, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

func (s *Store) Close(context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics was set.
// Not part of store.Store.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }

// put writes through ristretto's buffered pipeline and flushes it so the
// entry is visible to an immediate Get, which SetNX correctness depends on.
func (s *Store) put(key string, value []byte, ttl time.Duration) bool {
	var ok bool
	if ttl > 0 {
		ok = s.c.SetWithTTL(key, value, int64(len(value)), ttl)
	} else {
		ok = s.c.Set(key, value, int64(len(value)))
	}
	s.c.Wait()
	return ok
}
