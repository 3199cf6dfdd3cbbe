// Package sloghooks is a recache.Hooks sink that logs events via log/slog,
// with sampling for the chatty ones and optional key redaction.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/recache-dev/recache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ContentionEvery uint64 // LockContended fires on every lock race
	WaitAbortEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	contentionCtr atomic.Uint64
	waitAbortCtr  atomic.Uint64
}

var _ recache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ComputeFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("recache: computation failed, default substituted",
		slog.String("key", h.redact(key)), slog.Any("err", err))
}

func (h *Hooks) DetachedWriteFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("recache: detached refresh lost",
		slog.String("key", h.redact(key)), slog.Any("err", err))
}

func (h *Hooks) WaitAborted(key, reason string) {
	if h.l == nil || !sample(h.opts.WaitAbortEvery, &h.waitAbortCtr) {
		return
	}
	h.l.Warn("recache: wait aborted",
		slog.String("key", h.redact(key)), slog.String("reason", reason))
}

func (h *Hooks) LockContended(key string) {
	if h.l == nil || !sample(h.opts.ContentionEvery, &h.contentionCtr) {
		return
	}
	h.l.Debug("recache: refresh lock contended",
		slog.String("key", h.redact(key)))
}
