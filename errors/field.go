package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attributes err to the named field of a message or model. Nested
// fields use dot notation, for example Assets.1.Contract. A nil err gives
// nil, so validation code can call it unconditionally.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	f := &fieldError{field: name, desc: description, parent: err}
	if stackTrace(err) == nil {
		f.stack = callers()
	}
	return f
}

// AppendField adds the field error, if any, to the collection errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
	stack  errors.StackTrace
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Field() string                 { return e.field }
func (e *fieldError) Cause() error                  { return e.parent }
func (e *fieldError) Unwrap() error                 { return e.parent }
func (e *fieldError) StackTrace() errors.StackTrace { return e.stack }

// FieldErrors returns the errors attributed to the named field. Wrapping
// layers and collections are searched. For nested field errors of the same
// name only the outermost one is returned.
func FieldErrors(err error, name string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(*fieldError); ok && f.field == name {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				found = append(found, FieldErrors(member, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
