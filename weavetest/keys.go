package weavetest

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/crypto"
)

// NewKey returns a freshly generated private key. It panics if the system
// random source is not available.
func NewKey() crypto.PrivateKey {
	key, err := crypto.GenPrivKey()
	if err != nil {
		panic(err)
	}
	return key
}

// NewCondition returns a condition of a new ed25519 key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
