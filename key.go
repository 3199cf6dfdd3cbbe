package recache

import (
	"fmt"
	"slices"
	"strings"
)

// Refresh locks live next to their value under a dot prefix. Presence of
// the lock means a refresh is in flight or not yet due; it is never deleted
// explicitly, only expired by the store.
const lockPrefix = "."

var lockValue = []byte("1")

func lockKey(storageKey string) string { return lockPrefix + storageKey }

// buildKey derives the computation's cache key: name(v1,v2,...), each
// argument rendered in its textual form and original order, positional
// arguments first (filtered by index when useArgs is set), then keyword
// arguments (filtered by name when useKwargs is set).
//
// Keys are deliberately human-readable and unhashed. Two inputs collide
// only when they stringify identically; arguments without a meaningful
// textual form (pointers, handles) must be excluded via the allow-lists.
func buildKey(name string, call Call, useArgs []int, useKwargs []string) string {
	values := make([]string, 0, len(call.Args)+len(call.Kwargs))

	for i, a := range call.Args {
		if len(useArgs) > 0 && !slices.Contains(useArgs, i) {
			continue
		}
		values = append(values, quote(a))
	}
	for _, kv := range call.Kwargs {
		if len(useKwargs) > 0 && !slices.Contains(useKwargs, kv.Name) {
			continue
		}
		values = append(values, quote(kv.Value))
	}

	return name + "(" + strings.Join(values, ",") + ")"
}

func quote(v any) string { return "'" + fmt.Sprint(v) + "'" }
