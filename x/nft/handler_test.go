package nft_test

import (
	"context"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/app"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/store"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x/nft"
	"github.com/stretchr/testify/require"
)

func TestCreateContract(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer     weave.Condition
		msg        *nft.CreateContractMsg
		wantErr    *errors.Error
		wantMinter weave.Address
	}{
		"minter defaults to the signer": {
			signer:     alice,
			msg:        &nft.CreateContractMsg{Metadata: &weave.Metadata{Schema: 1}, Name: "Kitties", Symbol: "KIT"},
			wantMinter: alice.Address(),
		},
		"explicit minter": {
			signer:     alice,
			msg:        &nft.CreateContractMsg{Metadata: &weave.Metadata{Schema: 1}, Minter: bob.Address(), Name: "Kitties", Symbol: "KIT"},
			wantMinter: bob.Address(),
		},
		"no signer": {
			msg:     &nft.CreateContractMsg{Metadata: &weave.Metadata{Schema: 1}, Name: "Kitties", Symbol: "KIT"},
			wantErr: errors.ErrUnauthorized,
		},
		"missing symbol": {
			signer:  alice,
			msg:     &nft.CreateContractMsg{Metadata: &weave.Metadata{Schema: 1}, Name: "Kitties"},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			rt := app.NewRouter()
			auth := &weavetest.Auth{Signer: tc.signer}
			nft.RegisterRoutes(rt, auth)

			tx := &weavetest.Tx{Msg: tc.msg}
			if _, err := rt.Check(context.Background(), db.CacheWrap(), tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := rt.Deliver(context.Background(), db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			contract, err := nft.NewDirectory().Contract(db, res.Data)
			require.NoError(t, err)
			assert.Equal(t, tc.wantMinter, contract.Minter())
		})
	}
}

func TestMintAndTransfer(t *testing.T) {
	minter := weavetest.NewCondition()
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	operator := weavetest.NewCondition()

	db := store.MemStore()
	auth := &weavetest.Auth{}
	rt := app.NewRouter()
	nft.RegisterRoutes(rt, auth)

	deliver := func(signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
		auth.Signer = signer
		return rt.Deliver(context.Background(), db, &weavetest.Tx{Msg: msg})
	}
	meta := &weave.Metadata{Schema: 1}

	res, err := deliver(minter, &nft.CreateContractMsg{Metadata: meta, Name: "Kitties", Symbol: "KIT"})
	require.NoError(t, err)
	contractAddr := weave.Address(res.Data)

	_, err = deliver(alice, &nft.MintMsg{Metadata: meta, Contract: contractAddr, TokenID: 1, Owner: alice.Address()})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = deliver(minter, &nft.MintMsg{Metadata: meta, Contract: contractAddr, TokenID: 1, Owner: alice.Address()})
	assert.Nil(t, err)

	_, err = deliver(minter, &nft.MintMsg{Metadata: meta, Contract: contractAddr, TokenID: 1, Owner: bob.Address()})
	assert.IsErr(t, errors.ErrDuplicate, err)

	_, err = deliver(minter, &nft.MintMsg{Metadata: meta, Contract: weavetest.NewCondition().Address(), TokenID: 2, Owner: bob.Address()})
	assert.IsErr(t, errors.ErrNotFound, err)

	transfer := &nft.TransferMsg{Metadata: meta, Contract: contractAddr, From: alice.Address(), To: bob.Address(), TokenID: 1}
	_, err = deliver(operator, transfer)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = deliver(alice, &nft.SetApprovalForAllMsg{Metadata: meta, Contract: contractAddr, Operator: alice.Address(), Approved: true})
	assert.IsErr(t, errors.ErrInput, err)

	_, err = deliver(alice, &nft.SetApprovalForAllMsg{Metadata: meta, Contract: contractAddr, Operator: operator.Address(), Approved: true})
	assert.Nil(t, err)

	_, err = deliver(operator, transfer)
	assert.Nil(t, err)

	contract, err := nft.NewDirectory().Contract(db, contractAddr)
	require.NoError(t, err)
	owner, err := contract.OwnerOf(db, 1)
	require.NoError(t, err)
	assert.Equal(t, bob.Address(), owner)

	// The approval of alice does not cover tokens of bob.
	_, err = deliver(operator, &nft.TransferMsg{Metadata: meta, Contract: contractAddr, From: bob.Address(), To: alice.Address(), TokenID: 1})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = deliver(bob, &nft.TransferMsg{Metadata: meta, Contract: contractAddr, From: bob.Address(), To: alice.Address(), TokenID: 1})
	assert.Nil(t, err)
}

func TestQueries(t *testing.T) {
	minter := weavetest.NewCondition().Address()
	alice := weavetest.NewCondition().Address()

	db := store.MemStore()
	c, err := nft.CreateContract(db, minter, "Kitties", "KIT")
	require.NoError(t, err)
	contract, err := nft.NewDirectory().Contract(db, c.Address)
	require.NoError(t, err)
	require.NoError(t, contract.Mint(db, 1, alice))
	require.NoError(t, contract.Mint(db, 2, alice))

	qr := weave.NewQueryRouter()
	nft.RegisterQuery(qr)

	res, err := qr.Handler("/nft/contracts").Query(db, weave.KeyQueryMod, c.Address)
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = qr.Handler("/nft/tokens").Query(db, weave.KeyQueryMod, nft.TokenKey(c.Address, 2))
	require.NoError(t, err)
	require.Len(t, res, 1)
	var token nft.Token
	require.NoError(t, token.Unmarshal(res[0].Value))
	assert.Equal(t, uint64(2), token.TokenID)

	res, err = qr.Handler("/nft/tokens/owner").Query(db, weave.KeyQueryMod, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/nft/tokens").Query(db, weave.PrefixQueryMod, c.Address)
	require.NoError(t, err)
	assert.Equal(t, 2, len(res))
}
