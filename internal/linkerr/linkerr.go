// Package linkerr defines the error taxonomy for the acoustic link:
// the fixed set of ways a sender or receiver invocation can fail.
package linkerr

import "fmt"

// Kind identifies which stage of the link failed.
type Kind int

const (
	// InputError covers unreadable/empty audio or a missing message.
	InputError Kind = iota
	// ConfigError covers a derived parameter (spb) that violates a
	// wire invariant, e.g. sample rate too low for BIT_DURATION.
	ConfigError
	// SyncNotFound means stage 1 (coarse preamble search) produced no
	// candidate within search_max.
	SyncNotFound
	// MagicNotFound means stage 2 exhausted the +-spb window, both
	// polarities, without matching the STEG magic.
	MagicNotFound
	// InvalidLength means the decoded LEN field is zero or exceeds
	// the 2,000,000 byte ceiling.
	InvalidLength
	// CrcMismatch means the computed and stored CRC32 disagree.
	CrcMismatch
	// DecryptFailed means the AES-256-CTR primitive reported failure.
	DecryptFailed
	// InternalInconsistency means refinement succeeded but re-reading
	// the magic at best_pos disagreed — an implementation bug, not a
	// channel condition.
	InternalInconsistency
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case ConfigError:
		return "ConfigError"
	case SyncNotFound:
		return "SyncNotFound"
	case MagicNotFound:
		return "MagicNotFound"
	case InvalidLength:
		return "InvalidLength"
	case CrcMismatch:
		return "CrcMismatch"
	case DecryptFailed:
		return "DecryptFailed"
	case InternalInconsistency:
		return "InternalInconsistency"
	default:
		return "UnknownError"
	}
}

// Error wraps a Kind with diagnostic context and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, linkerr.Sentinel(linkerr.SyncNotFound))-style
// matching by comparing Kind when the target is also a *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind, chaining an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Sentinel builds a bare *Error of a Kind suitable for errors.Is
// comparisons in tests (e.g. linkerr.Sentinel(linkerr.CrcMismatch)).
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}
