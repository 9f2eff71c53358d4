// Package assert holds the few assertions the ledger tests share. Every
// failed assertion stops the test.
package assert

import (
	"reflect"
	"testing"

	"github.com/nftrade/weave/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil. Typed nil pointers, maps, slices and
// interfaces count as nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v includes the stack trace of our errors.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}

// Equal compares with reflect.DeepEqual.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError requires exactly one error reported for the named field and
// that it is of the want kind. A nil want requires that no error was
// reported for the field.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()

	found := errors.FieldErrors(err, field)
	if len(found) > 1 {
		for i, e := range found {
			t.Logf("\terror %d: %q", i+1, e)
		}
		t.Fatalf("want at most one %q field error, got %d", field, len(found))
		return
	}

	switch {
	case want == nil && len(found) == 0:
	case want == nil:
		t.Fatalf("want no %q field error, got %q", field, found[0])
	case len(found) == 0:
		t.Fatalf("no %q field error found in %v", field, err)
	case !want.Is(found[0]):
		t.Fatalf("want %q field error of kind %q, got %q", field, want, found[0])
	}
}

// IsErr fails unless got is want or wraps it.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
