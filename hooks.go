package recache

// Reasons passed to Hooks.WaitAborted.
const (
	WaitLockExpired = "lock_expired" // the refreshing party gave up or TTL'd out
	WaitCanceled    = "canceled"     // the caller's context was canceled
)

// Hooks are lightweight callbacks for high-signal coordinator events.
// Implementations MUST be cheap and non-blocking; the coordinator calls
// them on hot paths. Wrap with hooks/async to offload expensive sinks.
type Hooks interface {
	// The wrapped computation returned an error during a recompute;
	// Default was substituted and cached.
	ComputeFailed(key string, err error)

	// A fire-and-forget refresh could not persist its result. No caller is
	// listening, so this (plus logs) is the only signal.
	DetachedWriteFailed(key string, err error)

	// A polling wait stopped before a value appeared.
	// reason ∈ {WaitLockExpired, WaitCanceled}
	WaitAborted(key, reason string)

	// Admission was refused: another party holds the refresh lock.
	LockContended(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ComputeFailed(string, error)       {}
func (NopHooks) DetachedWriteFailed(string, error) {}
func (NopHooks) WaitAborted(string, string)        {}
func (NopHooks) LockContended(string)              {}
