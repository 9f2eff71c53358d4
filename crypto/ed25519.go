package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is an ed25519 public key.
type PublicKey ed25519.PublicKey

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a weave permission
func (p PublicKey) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address controlled by this key.
func (p PublicKey) Address() weave.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey ed25519.PrivateKey

// GenPrivKey generates a new key using the system random source.
func GenPrivKey() (PrivateKey, error) {
	return genPrivKey(rand.Reader)
}

func genPrivKey(r io.Reader) (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, errors.Wrap(err, "generate ed25519 key")
	}
	return PrivateKey(priv), nil
}

// PrivKeyFromHex decodes a key produced by PrivateKey.Hex.
func PrivKeyFromHex(s string) (PrivateKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "private key hex")
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key must be %d bytes", ed25519.PrivateKeySize)
	}
	return PrivateKey(raw), nil
}

// Sign returns a matching signature for this private key
func (p PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p), message)
}

// PublicKey returns the public half of this key.
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// Hex returns the hex form of the key.
func (p PrivateKey) Hex() string {
	return hex.EncodeToString(p)
}
