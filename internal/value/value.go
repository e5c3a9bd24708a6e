package value

import (
	"errors"
	"fmt"
)

// Unavailable is the placeholder token renderers substitute for a field
// or element that reported an AccessFailure.
const Unavailable = "<unavailable>"

// Value is a capability interface over one live value handle.
//
// Implementations wrap a host debugger's value model (or, for Snapshot,
// captured data). Each operation may fail independently; failures are
// always *AccessFailure.
type Value interface {
	// TypeString returns the value's reported type signature. It never
	// fails: a handle with no recoverable type reports "".
	TypeString() string

	// Field returns the named member of a structured value.
	Field(name string) (Value, error)

	// Elements enumerates the elements of an array-like value in storage
	// order. The sequence is finite; re-enumeration requires calling
	// Elements again on the same handle.
	Elements() ([]Value, error)

	// Deref follows a pointer or reference.
	Deref() (Value, error)

	// Int converts a scalar value to an integer.
	Int() (int64, error)

	// Raw returns a best-effort literal rendering of the value, used by
	// the fallback renderer. It never fails.
	Raw() string
}

// AccessFailure reports that one specific operation on a live value could
// not complete: unavailable memory, an optimized-out field, a stale
// handle. It is recovered locally by the caller, never propagated as a
// request-level failure.
type AccessFailure struct {
	// Op is the accessor that failed: "field", "elements", "deref", "int".
	Op string

	// Field is the member name for field accesses, empty otherwise.
	Field string

	// Type is the type string of the value being accessed, when known.
	Type string

	// Reason describes the underlying host-level condition.
	Reason string
}

func (e *AccessFailure) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("access %s %q on %s: %s", e.Op, e.Field, typeOrUnknown(e.Type), e.Reason)
	}
	return fmt.Sprintf("access %s on %s: %s", e.Op, typeOrUnknown(e.Type), e.Reason)
}

// IsAccessFailure reports whether err is (or wraps) an AccessFailure.
func IsAccessFailure(err error) bool {
	var af *AccessFailure
	return errors.As(err, &af)
}

func typeOrUnknown(t string) string {
	if t == "" {
		return "<unknown type>"
	}
	return t
}
