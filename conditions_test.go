package weave_test

import (
	"encoding/json"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParts(t *testing.T) {
	c := weave.NewCondition("swap", "operator", []byte("nftrade"))
	ext, typ, data, err := c.Parse()
	require.NoError(t, err)
	assert.Equal(t, "swap", ext)
	assert.Equal(t, "operator", typ)
	assert.Equal(t, []byte("nftrade"), data)
	assert.Equal(t, "swap/operator/6E667472616465", c.String())

	// Data may contain the separator and new lines.
	c = weave.NewCondition("sigs", "ed25519", []byte("a/b\nc"))
	assert.NoError(t, c.Validate())

	for _, bad := range []weave.Condition{
		nil,
		weave.Condition("swap/operator"),
		weave.NewCondition("sw", "operator", []byte("x")),
		weave.NewCondition("swap", "operator-type", []byte("x")),
		weave.NewCondition("swap", "operator", nil),
	} {
		assert.True(t, errors.ErrInput.Is(bad.Validate()), "%q", []byte(bad))
	}
	assert.Equal(t, "Invalid Condition: 78", weave.Condition("x").String())
}

func TestParseCondition(t *testing.T) {
	want := weave.NewCondition("sigs", "ed25519", []byte("bob"))

	got, err := weave.ParseCondition("sigs/ed25519/626F62")
	require.NoError(t, err)
	assert.True(t, want.Equals(got))

	got, err = weave.ParseCondition(want.String())
	require.NoError(t, err)
	assert.True(t, want.Equals(got))

	for _, text := range []string{"", "sigs/626F62", "sigs/ed25519/bob", "s/ed25519/626F62"} {
		_, err := weave.ParseCondition(text)
		assert.True(t, errors.ErrInput.Is(err), "%q: got %v", text, err)
	}
}

func TestConditionJSON(t *testing.T) {
	cases := map[string]struct {
		cond weave.Condition
		json string
	}{
		"condition": {
			cond: weave.NewCondition("swap", "operator", []byte("nftrade")),
			json: `"swap/operator/6E667472616465"`,
		},
		"nil": {
			cond: nil,
			json: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := json.Marshal(tc.cond)
			require.NoError(t, err)
			assert.Equal(t, tc.json, string(raw))

			var got weave.Condition
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.True(t, tc.cond.Equals(got))
		})
	}

	var c weave.Condition
	assert.True(t, errors.ErrInput.Is(json.Unmarshal([]byte(`"swap/zz"`), &c)))
	assert.Error(t, json.Unmarshal([]byte(`42`), &c))
}
