package memory

import (
	"context"
	"testing"
	"time"
)

func TestExpiryOnRead(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	if err := s.Set(ctx, "k", []byte("v"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry missing")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("expired entry still served")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	if err := s.Set(ctx, "k", []byte("abc"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get ok=%v err=%v", ok, err)
	}
	b[0] = 'Z'

	again, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("re-Get ok=%v err=%v", ok, err)
	}
	if string(again) != "abc" {
		t.Fatalf("entry mutated through returned slice: %q", again)
	}
}

func TestSetNX(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	created, err := s.SetNX(ctx, "lock", []byte("1"), 30*time.Millisecond)
	if err != nil || !created {
		t.Fatalf("first SetNX created=%v err=%v", created, err)
	}
	created, err = s.SetNX(ctx, "lock", []byte("1"), 30*time.Millisecond)
	if err != nil || created {
		t.Fatalf("second SetNX created=%v err=%v, want refused", created, err)
	}

	// an expired entry no longer blocks the conditional set
	time.Sleep(50 * time.Millisecond)
	created, err = s.SetNX(ctx, "lock", []byte("1"), 30*time.Millisecond)
	if err != nil || !created {
		t.Fatalf("SetNX after expiry created=%v err=%v", created, err)
	}
}

func TestIncr(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	for want := int64(1); want <= 3; want++ {
		n, err := s.Incr(ctx, "ctr")
		if err != nil || n != want {
			t.Fatalf("Incr = %d err=%v, want %d", n, err, want)
		}
	}

	if err := s.Set(ctx, "str", []byte("nope"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := s.Incr(ctx, "str"); err == nil {
		t.Fatal("Incr on non-integer value must fail")
	}
}

func TestIncrPreservesTTL(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	if err := s.Set(ctx, "ctr", []byte("5"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if n, err := s.Incr(ctx, "ctr"); err != nil || n != 6 {
		t.Fatalf("Incr = %d err=%v", n, err)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "ctr"); ok {
		t.Fatal("counter outlived its TTL")
	}
}

func TestJanitorSweeps(t *testing.T) {
	ctx := context.Background()
	s := New(10 * time.Millisecond)
	defer s.Close(ctx)

	if err := s.Set(ctx, "k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("janitor never removed the expired entry")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(10 * time.Millisecond)
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
