package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Wrap annotates err with description and returns nil for a nil err. A
// stack trace is attached by the innermost Wrap only.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	w := &wrappedError{msg: description, parent: err}
	if stackTrace(err) == nil {
		w.stack = callers()
	}
	return w
}

// callers records the stack of the Wrap call. The frames of this package
// are dropped when printing.
func callers() errors.StackTrace {
	return errors.New("").(stackTracer).StackTrace()
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
	// stack is set on the innermost wrapper only.
	stack errors.StackTrace
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// StackTrace is empty on all but the innermost wrapper.
func (e *wrappedError) StackTrace() errors.StackTrace {
	return e.stack
}

// Unwrap lets the standard library errors.Is and errors.As walk the chain.
func (e *wrappedError) Unwrap() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}
