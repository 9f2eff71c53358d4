package nft

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Initializer fulfils the weave.Initializer interface to load contracts and
// their tokens from the genesis file.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis creates every contract listed under the "nft" key in the given
// order, so that contract addresses are deterministic.
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var contracts []struct {
		Minter weave.Address `json:"minter"`
		Name   string        `json:"name"`
		Symbol string        `json:"symbol"`
		Tokens []struct {
			ID    uint64        `json:"id"`
			Owner weave.Address `json:"owner"`
		} `json:"tokens"`
	}
	if err := opts.ReadOptions("nft", &contracts); err != nil {
		return errors.Wrap(err, "cannot load nft contracts")
	}

	dir := NewDirectory()
	for i, c := range contracts {
		created, err := CreateContract(db, c.Minter, c.Name, c.Symbol)
		if err != nil {
			return errors.Wrapf(err, "contract #%d", i)
		}
		contract, err := dir.Contract(db, created.Address)
		if err != nil {
			return err
		}
		for _, t := range c.Tokens {
			if err := contract.Mint(db, t.ID, t.Owner); err != nil {
				return errors.Wrapf(err, "contract #%d token %d", i, t.ID)
			}
		}
	}
	return nil
}
