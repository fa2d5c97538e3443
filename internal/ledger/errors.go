package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested sequence number has no record.
// Absence is an explicit result, not a store failure.
var ErrNotFound = errors.New("record not found")

// CorruptionError reports a stored value that failed to parse as expected.
// A corrupt counter or record must never be silently treated as "no events
// yet" — callers surface this to operators instead of defaulting.
type CorruptionError struct {
	Key    string
	Reason string
	Err    error
}

func (e *CorruptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt value at %s: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt value at %s: %s", e.Key, e.Reason)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// IsCorruption reports whether err wraps a CorruptionError.
func IsCorruption(err error) bool {
	var ce *CorruptionError
	return errors.As(err, &ce)
}
