package errors

import (
	"fmt"
	"reflect"
)

// Root errors shared by all extensions. Codes 1 to 99 are reserved for this
// package.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg is returned for a message that fails validation.
	ErrMsg = Register(4, "invalid message")
	// ErrModel is returned for an entity that cannot be persisted or
	// loaded.
	ErrModel = Register(5, "invalid model")
	// ErrDuplicate signals a unique key or index collision.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	// ErrInvalidState is returned when an entity does not allow the
	// requested transition, for example settling a cancelled swap.
	ErrInvalidState = Register(10, "invalid state")
	ErrType         = Register(11, "invalid type")
	ErrInput        = Register(14, "invalid input")
	ErrDatabase     = Register(15, "database")
	ErrOverflow     = Register(16, "an operation cannot be completed due to value overflow")
	// ErrMetadata is returned for a missing or unsupported metadata schema.
	ErrMetadata = Register(17, "invalid metadata")

	// ErrPanic wraps recovered panics. Its details are never shown to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 stands for
// errors that were never registered.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a new root error. Extensions call it from package level
// variable declarations. Reusing a code panics.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Errors returned at runtime wrap one of them so
// that clients receive a stable code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the registered code.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is this root error, or wraps it. For a collection
// of errors it is enough that a single member matches. A nil *Error matches
// only nil errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	return visit(err, func(cur error) bool {
		return cur == e
	})
}

// visit calls match for err and every error it wraps, descending into
// collections, until match returns true.
func visit(err error, match func(error) bool) bool {
	for err != nil {
		if match(err) {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				if visit(member, match) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// isNilErr also recognizes a nil pointer stored in a non nil interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
