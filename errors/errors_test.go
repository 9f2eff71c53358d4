package errors

import (
	stdlib "errors"
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCauseReachesRoot(t *testing.T) {
	assert.Equal(t, error(ErrNotFound), errors.Cause(ErrNotFound))
	assert.Equal(t, error(ErrNotFound), errors.Cause(Wrap(Wrapf(ErrNotFound, "swap %d", 3), "execute")))
	assert.Equal(t, io.EOF, errors.Cause(Wrap(io.EOF, "read block")))
}

type nilPtrErr struct{}

func (*nilPtrErr) Error() string { return "typed nil" }

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		root *Error
		err  error
		want bool
	}{
		"same root":               {ErrNotFound, ErrNotFound, true},
		"other root":              {ErrNotFound, ErrModel, false},
		"wrapped by this package": {ErrNotFound, Wrap(ErrNotFound, "swap"), true},
		"wrapped by pkg/errors":   {ErrNotFound, errors.Wrap(ErrNotFound, "swap"), true},
		"other root wrapped":      {ErrNotFound, errors.Wrap(ErrOverflow, "too big"), false},
		"plain stdlib error":      {ErrNotFound, fmt.Errorf("not found"), false},
		"nil matches nil":         {nil, nil, true},
		"nil matches typed nil":   {nil, (*nilPtrErr)(nil), true},
		"nil does not match root": {nil, ErrNotFound, false},
		"root does not match nil": {ErrNotFound, nil, false},
		"member of a collection":  {ErrNotFound, Append(ErrInvalidState, ErrNotFound), true},
		"wrapped member":          {ErrNotFound, Append(ErrInput, Wrap(ErrNotFound, "token")), true},
		"no member matches":       {ErrNotFound, Append(ErrInvalidState, ErrInput), false},
		"field error":             {ErrEmpty, Field("Recipient", ErrEmpty, "required"), true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.root.Is(tc.err))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
	assert.NoError(t, Field("Assets", nil, "nothing"))
}

func TestStdlibCompatibility(t *testing.T) {
	err := Wrapf(ErrNotFound, "swap %d", 4)
	assert.True(t, stdlib.Is(err, ErrNotFound))
	assert.False(t, stdlib.Is(err, ErrInput))
	assert.True(t, stdlib.Is(Field("ID", err, ""), ErrNotFound))

	// The first layer records the stack, no foreign wrapper sits in between.
	field := Field("Recipient", ErrEmpty, "required")
	assert.True(t, stdlib.Is(field, ErrEmpty))
	assert.NotNil(t, stackTrace(field))
	assert.True(t, stdlib.Is(Wrap(field, "create swap"), ErrEmpty))

	var root *Error
	require.True(t, stdlib.As(Wrap(err, "execute"), &root))
	assert.Same(t, ErrNotFound, root)
}

func TestAppend(t *testing.T) {
	assert.NoError(t, Append(nil, nil))
	assert.Equal(t, error(ErrEmpty), Append(nil, ErrEmpty, nil))

	err := Append(Append(ErrEmpty, ErrInput), nil, ErrNotFound)
	m, ok := err.(multiErr)
	require.True(t, ok, "want a collection, got %T", err)
	assert.Len(t, m, 3)
	assert.Equal(t, "3 errors occurred:\n\t* value is empty\n\t* invalid input\n\t* not found\n", err.Error())

	code, _ := ABCIInfo(err, false)
	assert.Equal(t, ErrEmpty.code, code)
}

func TestRegister(t *testing.T) {
	assert.Panics(t, func() { Register(ErrNotFound.code, "another not found") })
	assert.Panics(t, func() { Register(internalABCICode, "internal") })
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	assert.True(t, ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestNew(t *testing.T) {
	err := ErrInvalidState.Newf("swap %d is %s", 2, "Executed")
	assert.True(t, ErrInvalidState.Is(err))
	assert.Equal(t, "swap 2 is Executed: invalid state", err.Error())
	assert.Equal(t, "gone: not found", ErrNotFound.New("gone").Error())
}
