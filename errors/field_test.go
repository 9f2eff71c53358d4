package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	// Created once so that results can be compared by identity.
	var (
		recipientErr = Field("Recipient", ErrUnauthorized, "not a participant")
		contractErr  = Field("Contract", ErrEmpty, "required")
		tokenErr     = Field("TokenID", ErrInput, "too long")
		assetErr     = Field("Assets", Append(contractErr, Append(tokenErr, ErrNotFound)), "asset 1")
		outerToken   = Field("TokenID", tokenErr, "outer")
		noRecipient  = Field("Recipient", ErrEmpty, "")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"single field error": {
			err:   recipientErr,
			field: "Recipient",
			want:  []error{recipientErr},
		},
		"collection of the same field": {
			err:   Append(recipientErr, noRecipient),
			field: "Recipient",
			want:  []error{recipientErr, noRecipient},
		},
		"field holding a collection": {
			err:   assetErr,
			field: "Assets",
			want:  []error{assetErr},
		},
		"nested inside a field collection": {
			err:   assetErr,
			field: "TokenID",
			want:  []error{tokenErr},
		},
		"nil error": {
			err:   nil,
			field: "Recipient",
			want:  nil,
		},
		"root error without field": {
			err:   ErrUnauthorized,
			field: "Recipient",
			want:  nil,
		},
		"other field": {
			err:   recipientErr,
			field: "Creator",
			want:  nil,
		},
		"behind wrapping layers": {
			err:   Wrap(Wrap(contractErr, "inner"), "outer"),
			field: "Contract",
			want:  []error{contractErr},
		},
		"collection behind wrapping layers": {
			err:   Wrap(assetErr, "create swap"),
			field: "Contract",
			want:  []error{contractErr},
		},
		"field inside other fields": {
			err:   Field("Swap", Field("Assets", tokenErr, ""), ""),
			field: "TokenID",
			want:  []error{tokenErr},
		},
		"outermost of the same name wins": {
			err:   outerToken,
			field: "TokenID",
			want:  []error{outerToken},
		},
		"several matches in a wrapped collection": {
			err:   Wrap(Append(Wrap(recipientErr, "a"), Wrap(contractErr, "b"), Wrap(recipientErr, "c")), "outer"),
			field: "Recipient",
			want:  []error{recipientErr, recipientErr},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			assert.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.Same(t, tc.want[i], got[i])
			}
		})
	}
}

func TestFieldMessage(t *testing.T) {
	assert.Equal(t, `field "Assets": invalid input`, Field("Assets", ErrInput, "").Error())
	assert.Equal(t, `field "Assets": need 2, got 1: invalid input`, Field("Assets", ErrInput, "need %d, got %d", 2, 1).Error())

	err := AppendField(nil, "Recipient", ErrEmpty)
	err = AppendField(err, "Creator", nil)
	err = AppendField(err, "SplitIndex", ErrInput)
	assert.Len(t, FieldErrors(err, "Recipient"), 1)
	assert.Len(t, FieldErrors(err, "SplitIndex"), 1)
	assert.Empty(t, FieldErrors(err, "Creator"))
}
