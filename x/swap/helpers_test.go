package swap_test

import (
	"context"
	"testing"
	"time"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/store"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
	"github.com/stretchr/testify/require"
)

var blockNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func blockCtx() weave.Context {
	return weave.WithBlockTime(context.Background(), blockNow)
}

// world is a store with a single contract. Alice owns token 1 and Bob owns
// token 2.
type world struct {
	db       weave.CacheableKVStore
	contract *nft.TokenContract
	alice    weave.Condition
	bob      weave.Condition
}

func newWorld(t testing.TB) *world {
	t.Helper()
	w := &world{
		db:    store.MemStore(),
		alice: weavetest.NewCondition(),
		bob:   weavetest.NewCondition(),
	}
	w.contract = deployContract(t, w.db, "Kitties")
	require.NoError(t, w.contract.Mint(w.db, 1, w.alice.Address()))
	require.NoError(t, w.contract.Mint(w.db, 2, w.bob.Address()))
	return w
}

func deployContract(t testing.TB, db weave.KVStore, name string) *nft.TokenContract {
	t.Helper()
	c, err := nft.CreateContract(db, weavetest.NewCondition().Address(), name, "SYM")
	require.NoError(t, err)
	contract, err := nft.NewDirectory().Contract(db, c.Address)
	require.NoError(t, err)
	return contract
}

func (w *world) approveAll(t testing.TB) {
	t.Helper()
	for _, owner := range []weave.Condition{w.alice, w.bob} {
		require.NoError(t, w.contract.SetApprovalForAll(w.db, owner.Address(), swap.OperatorAddress(), true))
	}
}

// offer returns a message swapping token 1 of Alice for token 2 of Bob.
func (w *world) offer() *swap.CreateSwapMsg {
	return &swap.CreateSwapMsg{
		Metadata:       &weave.Metadata{Schema: 1},
		Recipient:      w.bob.Address(),
		SplitIndex:     1,
		AssetContracts: [][]byte{w.contract.Address(), w.contract.Address()},
		TokenIDs:       []uint64{1, 2},
	}
}

func (w *world) owner(t testing.TB, tokenID uint64) weave.Address {
	t.Helper()
	owner, err := w.contract.OwnerOf(w.db, tokenID)
	require.NoError(t, err)
	return owner
}

// staticDirectory serves fixed objects by address.
type staticDirectory map[string]interface{}

func (d staticDirectory) Lookup(db weave.ReadOnlyKVStore, addr weave.Address) (interface{}, error) {
	obj, ok := d[string(addr)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s", addr)
	}
	return obj, nil
}

// countingDirectory counts lookups of the wrapped directory.
type countingDirectory struct {
	swap.Directory
	calls int
}

func (d *countingDirectory) Lookup(db weave.ReadOnlyKVStore, addr weave.Address) (interface{}, error) {
	d.calls++
	return d.Directory.Lookup(db, addr)
}

// ownerOnly provides only a part of the asset contract operations.
type ownerOnly struct{}

func (ownerOnly) OwnerOf(weave.ReadOnlyKVStore, uint64) (weave.Address, error) {
	return nil, nil
}

// failingContract refuses to transfer a single token.
type failingContract struct {
	*nft.TokenContract
	failOn uint64
}

func (c failingContract) TransferFrom(db weave.KVStore, operator, from, to weave.Address, tokenID uint64) error {
	if tokenID == c.failOn {
		return errors.Wrap(errors.ErrHuman, "transfer refused")
	}
	return c.TokenContract.TransferFrom(db, operator, from, to, tokenID)
}
