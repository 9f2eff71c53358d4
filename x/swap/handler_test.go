package swap_test

import (
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/app"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
	"github.com/stretchr/testify/require"
)

func TestSwapHandlers(t *testing.T) {
	w := newWorld(t)
	stranger := weavetest.NewCondition()
	meta := &weave.Metadata{Schema: 1}

	auth := &weavetest.Auth{}
	rt := app.NewRouter()
	nft.RegisterRoutes(rt, auth)
	swap.RegisterRoutes(rt, auth, nft.NewDirectory())

	check := func(signer weave.Condition, msg weave.Msg) error {
		auth.Signer = signer
		_, err := rt.Check(blockCtx(), w.db.CacheWrap(), &weavetest.Tx{Msg: msg})
		return err
	}
	deliver := func(signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
		auth.Signer = signer
		return rt.Deliver(blockCtx(), w.db, &weavetest.Tx{Msg: msg})
	}

	require.NoError(t, check(w.alice, w.offer()))
	res, err := deliver(w.alice, w.offer())
	require.NoError(t, err)
	assert.Equal(t, swap.SwapKey(0), res.Data)

	ev, ok, err := swap.EventFromTags(res.Tags)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, swap.Event{
		Kind:      swap.EventCreated,
		ID:        0,
		Creator:   w.alice.Address(),
		Recipient: w.bob.Address(),
	}, ev)

	execute := &swap.ExecuteSwapMsg{Metadata: meta, SwapID: 0}
	assert.IsErr(t, errors.ErrUnauthorized, check(stranger, execute))
	_, err = deliver(stranger, execute)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.IsErr(t, errors.ErrNotFound, check(w.bob, &swap.ExecuteSwapMsg{Metadata: meta, SwapID: 5}))

	// Without approvals the swap cannot be executed yet.
	_, err = deliver(w.bob, execute)
	assert.IsErr(t, swap.ErrNotApproved, err)

	for _, owner := range []weave.Condition{w.alice, w.bob} {
		_, err := deliver(owner, &nft.SetApprovalForAllMsg{
			Metadata: meta,
			Contract: w.contract.Address(),
			Operator: swap.OperatorAddress(),
			Approved: true,
		})
		require.NoError(t, err)
	}

	require.NoError(t, check(w.bob, execute))
	res, err = deliver(w.bob, execute)
	require.NoError(t, err)
	assert.Equal(t, swap.SwapKey(0), res.Data)
	ev, ok, err = swap.EventFromTags(res.Tags)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, swap.Event{Kind: swap.EventExecuted, ID: 0}, ev)

	assert.Equal(t, w.bob.Address(), w.owner(t, 1))
	assert.Equal(t, w.alice.Address(), w.owner(t, 2))

	cancel := &swap.CancelSwapMsg{Metadata: meta, SwapID: 0}
	assert.IsErr(t, errors.ErrInvalidState, check(w.alice, cancel))
	_, err = deliver(w.alice, cancel)
	assert.IsErr(t, errors.ErrInvalidState, err)
}

func TestCreateSwapCheckRejects(t *testing.T) {
	cases := map[string]struct {
		prepare func(t *testing.T, w *world)
		msg     func(w *world) *swap.CreateSwapMsg
		signer  func(w *world) weave.Condition
		wantErr *errors.Error
	}{
		"swap with yourself": {
			msg: func(w *world) *swap.CreateSwapMsg {
				m := w.offer()
				m.Recipient = w.alice.Address()
				return m
			},
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"more assets than configured": {
			prepare: func(t *testing.T, w *world) {
				conf := swap.Configuration{Metadata: &weave.Metadata{Schema: 1}, MaxAssets: 1}
				require.NoError(t, swap.SaveConfiguration(w.db, &conf))
			},
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"contract not deployed": {
			msg: func(w *world) *swap.CreateSwapMsg {
				m := w.offer()
				m.AssetContracts[1] = weavetest.NewCondition().Address()
				return m
			},
			wantErr: swap.ErrNotCompliant,
		},
		"no signer": {
			signer:  func(*world) weave.Condition { return nil },
			wantErr: errors.ErrUnauthorized,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newWorld(t)
			if tc.prepare != nil {
				tc.prepare(t, w)
			}
			msg := w.offer()
			if tc.msg != nil {
				msg = tc.msg(w)
			}
			signer := w.alice
			if tc.signer != nil {
				signer = tc.signer(w)
			}

			rt := app.NewRouter()
			swap.RegisterRoutes(rt, &weavetest.Auth{Signer: signer}, nft.NewDirectory())

			db := w.db.CacheWrap()
			_, err := rt.Check(blockCtx(), db, &weavetest.Tx{Msg: msg})
			assert.IsErr(t, tc.wantErr, err)

			// Check allocates no id.
			id, err := swap.NewRegistry().Allocate(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), id)
		})
	}
}

func TestCancelSwapHandler(t *testing.T) {
	w := newWorld(t)
	meta := &weave.Metadata{Schema: 1}

	auth := &weavetest.Auth{}
	rt := app.NewRouter()
	swap.RegisterRoutes(rt, auth, nft.NewDirectory())

	auth.Signer = w.alice
	_, err := rt.Deliver(blockCtx(), w.db, &weavetest.Tx{Msg: w.offer()})
	require.NoError(t, err)

	// A transaction signed by several parties acts as the participant.
	auth.Signer = weavetest.NewCondition()
	auth.Signers = []weave.Condition{w.bob}
	res, err := rt.Deliver(blockCtx(), w.db, &weavetest.Tx{Msg: &swap.CancelSwapMsg{Metadata: meta, SwapID: 0}})
	require.NoError(t, err)

	ev, ok, err := swap.EventFromTags(res.Tags)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, swap.EventCancelled, ev.Kind)

	stored, err := swap.NewRegistry().Get(w.db, 0)
	require.NoError(t, err)
	assert.Equal(t, swap.StatusCancelled, stored.Status)
}

func TestSwapQueries(t *testing.T) {
	w := newWorld(t)
	reg := swap.NewRegistry()
	createOffer(t, w, reg)
	createOffer(t, w, reg)

	qr := weave.NewQueryRouter()
	swap.RegisterQuery(qr)

	res, err := qr.Handler("/swaps").Query(w.db, weave.KeyQueryMod, swap.SwapKey(1))
	require.NoError(t, err)
	require.Len(t, res, 1)
	var s swap.Swap
	require.NoError(t, s.Unmarshal(res[0].Value))
	assert.Equal(t, uint64(1), s.ID)

	res, err = qr.Handler("/swaps/creator").Query(w.db, weave.KeyQueryMod, w.alice.Address())
	require.NoError(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/swaps/recipient").Query(w.db, weave.KeyQueryMod, w.alice.Address())
	require.NoError(t, err)
	assert.Equal(t, 0, len(res))
}
