package crypto

import (
	"testing"

	"github.com/nftrade/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv, err := GenPrivKey()
	require.NoError(t, err)

	pub := priv.PublicKey()
	msg := []byte("execute swap 0")
	sig := priv.Sign(msg)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("execute swap 1"), sig))

	other, err := GenPrivKey()
	require.NoError(t, err)
	assert.False(t, other.PublicKey().Verify(msg, sig))
}

func TestConditionAndAddress(t *testing.T) {
	priv, err := GenPrivKey()
	require.NoError(t, err)

	cond := priv.PublicKey().Condition()
	require.NoError(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte(priv.PublicKey()), data)
	assert.Equal(t, cond.Address(), priv.PublicKey().Address())
}

func TestPrivKeyFromHex(t *testing.T) {
	priv, err := GenPrivKey()
	require.NoError(t, err)

	got, err := PrivKeyFromHex(priv.Hex())
	require.NoError(t, err)
	assert.Equal(t, priv, got)

	_, err = PrivKeyFromHex("abcd")
	assert.True(t, errors.ErrInput.Is(err))

	_, err = PrivKeyFromHex("zz")
	assert.True(t, errors.ErrInput.Is(err))
}
