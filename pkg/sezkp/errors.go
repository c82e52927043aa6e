// Package sezkp is the public surface of the streaming proving system: it
// re-exports the core data model and exposes batch/streaming entry points
// for both backends.
package sezkp

import "fmt"

// ErrorCode identifies the kind of failure a proving or verification
// operation aborted with. Codes are stable wire-visible identifiers, not
// just debugging labels: callers branch on them to decide whether a failure
// is retryable, a data-integrity problem, or a caller bug.
type ErrorCode int

const (
	// ErrUnknown is the zero value; it should never be constructed directly.
	ErrUnknown ErrorCode = iota

	// ErrMalformedBlock marks a σ_k that fails structural validation
	// (tape-count mismatch, inverted window, out-of-range offset).
	ErrMalformedBlock

	// ErrWriteOutOfWindow marks a σ_k whose movement log writes outside the
	// declared window for some tape.
	ErrWriteOutOfWindow

	// ErrInterfaceMismatch marks adjacent blocks whose control or head state
	// does not chain (A.ctrl_out != B.ctrl_in, or head discontinuity).
	ErrInterfaceMismatch

	// ErrTauMismatch marks a change in tape count across blocks.
	ErrTauMismatch

	// ErrManifestMismatch marks a Merkle manifest root that does not match
	// the recomputed root over the supplied σ_k stream.
	ErrManifestMismatch

	// ErrTranscriptMismatch marks a transcript-derived challenge or MAC that
	// does not match the value the verifier recomputed.
	ErrTranscriptMismatch

	// ErrMerklePathInvalid marks a Merkle opening whose path does not
	// reconstruct the claimed root.
	ErrMerklePathInvalid

	// ErrColumnRootMismatch marks a column commitment root mismatch.
	ErrColumnRootMismatch

	// ErrAirNonZero marks an AIR composition that evaluates non-zero at a
	// queried row.
	ErrAirNonZero

	// ErrFriFoldMismatch marks a FRI fold step whose recomputed value does
	// not match the next layer's opened value.
	ErrFriFoldMismatch

	// ErrFriFinalMismatch marks a FRI final value that does not match the
	// transcript-bound value or its claimed hash.
	ErrFriFinalMismatch

	// ErrFriPathMismatch marks a FRI query Merkle path that fails to verify.
	ErrFriPathMismatch

	// ErrQueryOrderMismatch marks query indices that were not derived from
	// the transcript in the expected order.
	ErrQueryOrderMismatch

	// ErrBackendMismatch marks an artifact whose backend tag does not match
	// the verifier being invoked.
	ErrBackendMismatch

	// ErrUnsupportedVersion marks a wire version this build does not know
	// how to decode.
	ErrUnsupportedVersion

	// ErrIO wraps an underlying I/O failure (reading/writing a streamed
	// artifact).
	ErrIO

	// ErrCanceled marks a caller-initiated cancellation (context.Context).
	ErrCanceled
)

func (c ErrorCode) String() string {
	switch c {
	case ErrMalformedBlock:
		return "MalformedBlock"
	case ErrWriteOutOfWindow:
		return "WriteOutOfWindow"
	case ErrInterfaceMismatch:
		return "InterfaceMismatch"
	case ErrTauMismatch:
		return "TauMismatch"
	case ErrManifestMismatch:
		return "ManifestMismatch"
	case ErrTranscriptMismatch:
		return "TranscriptMismatch"
	case ErrMerklePathInvalid:
		return "MerklePathInvalid"
	case ErrColumnRootMismatch:
		return "ColumnRootMismatch"
	case ErrAirNonZero:
		return "AirNonZero"
	case ErrFriFoldMismatch:
		return "FriFoldMismatch"
	case ErrFriFinalMismatch:
		return "FriFinalMismatch"
	case ErrFriPathMismatch:
		return "FriPathMismatch"
	case ErrQueryOrderMismatch:
		return "QueryOrderMismatch"
	case ErrBackendMismatch:
		return "BackendMismatch"
	case ErrUnsupportedVersion:
		return "UnsupportedVersion"
	case ErrIO:
		return "IoError"
	case ErrCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Error is the typed error carrying a stable Code for callers to branch on.
// Most internal packages (core, container, stark/v1, prover) construct it
// directly via New or Wrap; config and core.EvaluateRootChecked return
// plain fmt.Errorf errors instead.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sezkp: %s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("sezkp: %s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Code. Two *Error
// values with different messages but the same Code are considered equal for
// errors.Is purposes, matching how callers are expected to branch on codes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap tags cause with code and message, producing the typed error returned
// across package boundaries.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// New constructs a typed error with no wrapped cause.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}
