package swap_test

import (
	"context"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
	"github.com/stretchr/testify/require"
)

func TestCreateSwap(t *testing.T) {
	w := newWorld(t)
	reg := swap.NewRegistry()
	rec := &swap.Recorder{}
	builder := swap.NewBuilder(reg, swap.NewResolver(nft.NewDirectory()), rec)

	msg := w.offer()
	msg.AuxParam = 42
	id, err := builder.CreateSwap(blockCtx(), w.db, w.alice.Address(), msg)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	got, err := reg.Get(w.db, id)
	require.NoError(t, err)
	assert.Equal(t, swap.StatusPending, got.Status)
	assert.Equal(t, w.alice.Address(), got.Creator)
	assert.Equal(t, w.bob.Address(), got.Recipient)
	assert.Equal(t, uint32(1), got.SplitIndex)
	assert.Equal(t, uint64(42), got.AuxParam)
	assert.Equal(t, weave.AsUnixTime(blockNow), got.CreatedAt)
	require.Len(t, got.Assets, 2)
	assert.Equal(t, uint64(1), got.Assets[0].TokenID)
	assert.Equal(t, uint64(2), got.Assets[1].TokenID)

	assert.Equal(t, []swap.Event{
		{Kind: swap.EventCreated, ID: 0, Creator: w.alice.Address(), Recipient: w.bob.Address()},
	}, rec.Events())

	// Creation does not require approvals nor moves any asset.
	assert.Equal(t, w.alice.Address(), w.owner(t, 1))
	assert.Equal(t, w.bob.Address(), w.owner(t, 2))

	next, err := builder.CreateSwap(blockCtx(), w.db, w.alice.Address(), w.offer())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next)
}

func TestCreateSwapRejects(t *testing.T) {
	unknown := weavetest.NewCondition().Address()

	cases := map[string]struct {
		mutate  func(w *world, msg *swap.CreateSwapMsg)
		caller  func(w *world) weave.Address
		wantErr *errors.Error
	}{
		"unequal lengths": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.TokenIDs = msg.TokenIDs[:1] },
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"no assets": {
			mutate: func(w *world, msg *swap.CreateSwapMsg) {
				msg.AssetContracts = nil
				msg.TokenIDs = nil
				msg.SplitIndex = 0
			},
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"swap with yourself": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.Recipient = w.alice.Address() },
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"split index out of range": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.SplitIndex = 3 },
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"invalid recipient": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.Recipient = []byte("short") },
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"invalid contract address": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.AssetContracts[1] = []byte("short") },
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"duplicate asset": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.TokenIDs[1] = 1 },
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"too many assets": {
			mutate: func(w *world, msg *swap.CreateSwapMsg) {
				conf := swap.Configuration{Metadata: &weave.Metadata{Schema: 1}, MaxAssets: 1}
				if err := swap.SaveConfiguration(w.db, &conf); err != nil {
					panic(err)
				}
			},
			wantErr: swap.ErrInvalidSwapSpec,
		},
		"not compliant contract": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.AssetContracts[1] = unknown },
			wantErr: swap.ErrNotCompliant,
		},
		"missing metadata": {
			mutate:  func(w *world, msg *swap.CreateSwapMsg) { msg.Metadata = nil },
			wantErr: errors.ErrMetadata,
		},
		"invalid caller": {
			caller:  func(w *world) weave.Address { return nil },
			wantErr: errors.ErrUnauthorized,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newWorld(t)
			reg := swap.NewRegistry()
			rec := &swap.Recorder{}
			builder := swap.NewBuilder(reg, swap.NewResolver(nft.NewDirectory()), rec)

			msg := w.offer()
			if tc.mutate != nil {
				tc.mutate(w, msg)
			}
			caller := w.alice.Address()
			if tc.caller != nil {
				caller = tc.caller(w)
			}

			_, err := builder.CreateSwap(blockCtx(), w.db, caller, msg)
			assert.IsErr(t, tc.wantErr, err)

			// No id was allocated and nothing was emitted.
			id, err := reg.Allocate(w.db)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), id)
			assert.Equal(t, 0, len(rec.Events()))
		})
	}
}

func TestCreateSwapRequiresBlockTime(t *testing.T) {
	w := newWorld(t)
	builder := swap.NewBuilder(swap.NewRegistry(), swap.NewResolver(nft.NewDirectory()), &swap.Recorder{})
	_, err := builder.CreateSwap(context.Background(), w.db, w.alice.Address(), w.offer())
	assert.IsErr(t, errors.ErrHuman, err)
}
