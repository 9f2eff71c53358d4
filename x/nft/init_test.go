package nft_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/store"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x/nft"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	minter := weavetest.NewCondition().Address()
	alice := weavetest.NewCondition().Address()

	raw := fmt.Sprintf(`[{
		"minter": %q,
		"name": "Kitties",
		"symbol": "KIT",
		"tokens": [{"id": 1, "owner": %q}, {"id": 2, "owner": %q}]
	}]`, minter.String(), alice.String(), alice.String())
	opts := weave.Options{"nft": json.RawMessage(raw)}

	db := store.MemStore()
	var initializer nft.Initializer
	require.NoError(t, initializer.FromGenesis(opts, db))

	addr := nft.ContractCondition([]byte{0, 0, 0, 0, 0, 0, 0, 1}).Address()
	contract, err := nft.NewDirectory().Contract(db, addr)
	require.NoError(t, err)
	assert.Equal(t, minter, contract.Minter())

	for _, id := range []uint64{1, 2} {
		owner, err := contract.OwnerOf(db, id)
		require.NoError(t, err)
		assert.Equal(t, alice, owner)
	}
}

func TestGenesisDuplicateToken(t *testing.T) {
	minter := weavetest.NewCondition().Address()
	raw := fmt.Sprintf(`[{
		"minter": %q,
		"name": "Kitties",
		"symbol": "KIT",
		"tokens": [{"id": 1, "owner": %q}, {"id": 1, "owner": %q}]
	}]`, minter.String(), minter.String(), minter.String())

	var initializer nft.Initializer
	err := initializer.FromGenesis(weave.Options{"nft": json.RawMessage(raw)}, store.MemStore())
	require.Error(t, err)
}
