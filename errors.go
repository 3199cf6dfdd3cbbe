package recache

import (
	"fmt"
)

// RefreshError reports a recompute that could not persist its result. On
// inline paths it reaches the caller; on detached paths it is surfaced via
// Hooks.DetachedWriteFailed and logs only. ComputeErr is set when the
// wrapped computation also failed (so the value being written was Default).
type RefreshError struct {
	Key        string
	ComputeErr error
	StoreErr   error
}

func (e *RefreshError) Error() string {
	if e.ComputeErr != nil {
		return fmt.Sprintf("refresh %q failed: compute=%v; store=%v",
			e.Key, e.ComputeErr, e.StoreErr)
	}
	return fmt.Sprintf("refresh %q: store write failed: %v", e.Key, e.StoreErr)
}

func (e *RefreshError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.ComputeErr != nil {
		errs = append(errs, e.ComputeErr)
	}
	if e.StoreErr != nil {
		errs = append(errs, e.StoreErr)
	}
	return errs
}
