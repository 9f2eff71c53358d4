package weave_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressString(t *testing.T) {
	addr := weave.Address("swap operator")
	assert.Equal(t, "73776170206F70657261746F72", addr.String())
	assert.Equal(t, "(nil)", weave.Address(nil).String())
	assert.Nil(t, weave.NewAddress(nil))
	assert.Len(t, weave.NewAddress([]byte("x")), weave.AddressLength)
}

func TestParseAddress(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte("alice"))
	addr := cond.Address()
	b32, err := addr.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		text    string
		want    weave.Address
		wantErr *errors.Error
	}{
		"upper case hex":      {text: addr.String(), want: addr},
		"explicit hex":        {text: fmt.Sprintf("hex:%x", []byte(addr)), want: addr},
		"condition":           {text: "cond:" + cond.String(), want: addr},
		"bech32":              {text: "bech32:" + b32, want: addr},
		"too short":           {text: "0A0B0C", wantErr: errors.ErrInput},
		"not hex":             {text: "alice", wantErr: errors.ErrInput},
		"condition too short": {text: "cond:sigs/616c696365", wantErr: errors.ErrInput},
		"condition not hex":   {text: "cond:sigs/ed25519/alice", wantErr: errors.ErrInput},
		"broken bech32":       {text: "bech32:nft1xyz", wantErr: errors.ErrInput},
		"unknown format":      {text: "base64:YWxpY2U=", wantErr: errors.ErrType},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := weave.ParseAddress(tc.text)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := weave.NewCondition("swap", "operator", []byte("nftrade")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(`"%X"`, []byte(addr)), string(raw))

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)

	err = json.Unmarshal([]byte(`"cond:swap/operator/zz"`), &got)
	assert.True(t, errors.ErrInput.Is(err), "got %v", err)
}
