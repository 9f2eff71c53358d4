package errors

import (
	"strconv"
	"strings"
)

// Append joins errs into a single error, skipping nil values. It returns
// nil when nothing is left and the error itself when only one is left.
// Nested collections are flattened.
func Append(errs ...error) error {
	var all multiErr
	for _, err := range errs {
		switch e := err.(type) {
		case multiErr:
			all = append(all, e...)
		default:
			if !isNilErr(err) {
				all = append(all, err)
			}
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

// multiErr collects errors found together, such as all validation failures
// of a message.
type multiErr []error

type unpacker interface {
	Unpack() []error
}

var _ unpacker = multiErr(nil)

func (e multiErr) Unpack() []error {
	return e
}

func (e multiErr) Error() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(e)))
	b.WriteString(" errors occurred:")
	for _, err := range e {
		b.WriteString("\n\t* ")
		b.WriteString(err.Error())
	}
	b.WriteString("\n")
	return b.String()
}

// ABCICode is the code of the first collected error.
func (e multiErr) ABCICode() uint32 {
	return abciCode(e[0])
}
