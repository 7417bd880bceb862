package entities

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks transport failures and non-2xx responses
// from listing and lookup calls. These abort the surrounding operation:
// there is nothing meaningful to fan out. Per-item fan-out failures are
// never reported through this error; they are recorded in the
// MigrationResult instead.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// UpstreamError wraps the underlying cause of an unreachable platform
// together with the operation that was attempted.
type UpstreamError struct {
	Op    string
	Cause error
}

func (upstreamError *UpstreamError) Error() string {
	return fmt.Sprintf("upstream unavailable while %s: %v", upstreamError.Op, upstreamError.Cause)
}

func (upstreamError *UpstreamError) Unwrap() error {
	return upstreamError.Cause
}

// Is reports ErrUpstreamUnavailable so callers can match the taxonomy
// without knowing the concrete type.
func (upstreamError *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}
