package swap_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/x/swap"
)

func TestMultiEmitter(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))

	first, second := &swap.Recorder{}, &swap.Recorder{}
	tags := &swap.TagEmitter{}
	emitter := swap.MultiEmitter{first, tags, swap.LogEmitter{}, second}

	creator := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()
	emitter.SwapCreated(ctx, 7, creator, recipient)
	emitter.SwapExecuted(ctx, 7)
	emitter.SwapCancelled(ctx, 8)

	want := []swap.Event{
		{Kind: swap.EventCreated, ID: 7, Creator: creator, Recipient: recipient},
		{Kind: swap.EventExecuted, ID: 7},
		{Kind: swap.EventCancelled, ID: 8},
	}
	assert.Equal(t, want, first.Events())
	assert.Equal(t, want, second.Events())

	var wantTags int
	for _, ev := range want {
		wantTags += len(ev.Tags())
	}
	require.Len(t, tags.Tags(), wantTags)
	assert.Equal(t, want[0].Tags(), tags.Tags()[:4])

	logged := buf.String()
	assert.Contains(t, logged, "swap created")
	assert.Contains(t, logged, "swap executed")
	assert.Contains(t, logged, "swap cancelled")
}
