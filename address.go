package weave

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/nftrade/weave/crypto/bech32"
	"github.com/nftrade/weave/errors"
)

var (
	// AddressLength is the size of every address. It may only be changed
	// before the first address is computed.
	AddressLength = 20

	// AddressHRP is the human readable part of bech32 encoded addresses.
	AddressHRP = "nft"
)

// Address is the truncated sha256 digest of a Condition. Accounts, token
// owners and swap participants are all identified by an Address.
type Address []byte

// NewAddress hashes data into an address. Nil data gives a nil address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

// ParseAddress decodes the text form of an address. Hex is the default,
// a prefix selects another encoding:
//
//   hex:<hex>
//   cond:<condition>  the address of a condition in its String form
//   bech32:<bech32>   any human readable part is accepted
func ParseAddress(text string) (Address, error) {
	format, payload := "hex", text
	if i := strings.IndexByte(text, ':'); i >= 0 {
		format, payload = text[:i], text[i+1:]
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = raw
	case "cond":
		c, err := ParseCondition(payload)
		if err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		_, raw, err := bech32.Decode(payload)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		addr = raw
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	return addr, addr.Validate()
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", a)
	}
	return nil
}

// String is the upper case hex form, or "(nil)" for an empty address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with AddressHRP.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(AddressHRP, a)
}

// MarshalJSON uses upper case hex instead of the default base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts every form understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	text, err := jsonText(raw)
	if err != nil || text == "" {
		*a = nil
		return err
	}
	addr, err := ParseAddress(text)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
