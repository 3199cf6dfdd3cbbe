// Package recache wraps arbitrary computations with refresh-ahead,
// stale-while-revalidate caching over a shared key-value store. Any number
// of processes may wrap the same computation; the store's
// conditional-set-with-TTL is the only synchronization point between them.
//
// Components:
//   - Store: byte store with TTL plus SETNX/INCR (store/redis in
//     production; store/memory and store/ristretto in-process).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - Wrapped[V]: one computation bound to a refresh/expire/retry policy.
//
// Keys:
//
//	<ns>:name('a','b')   - cached value, expires after Policy.Expire
//	.<ns>:name('a','b')  - refresh lock, expires after Policy.Retry (or
//	                       Policy.Refresh once a recompute completed)
//	<ns>:Refresh ...     - shared stats counters
//
// The refresh lock is an admission gate, not a mutex for the full
// recompute: a recompute outliving the retry TTL can be shadowed by a
// second one, whose write races the first (last write wins). Callers serve
// stale data while a refresh is in flight, or Default when nothing usable
// exists and the policy does not wait.
package recache
