package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftrade/weave/app"
	"github.com/nftrade/weave/cmd/nftraded/metrics"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/x/swap"
)

// subscribe waits until the subscription is confirmed, so nothing
// published afterwards is missed.
func subscribe(t *testing.T, client *redis.Client, channel string) *redis.PubSub {
	t.Helper()
	sub := client.Subscribe(context.Background(), channel)
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)
	return sub
}

func receive(t *testing.T, sub *redis.PubSub) *redis.Message {
	t.Helper()
	select {
	case msg := <-sub.Channel():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}
	return nil
}

func TestPublisherDeliversSwapEvents(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	all := subscribe(t, client, ChannelAll)
	defer all.Close()
	executed := subscribe(t, client, ChannelPrefix+"executed")
	defer executed.Close()

	logger, _ := test.NewNullLogger()
	m := metrics.New()
	p := New(client, logger, m, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	creator := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()

	// Events without swap tags are not published.
	p.HandleEvent(app.Event{Height: 2, Path: "nft/mint"})
	p.HandleEvent(app.Event{
		Height: 3,
		Path:   "swap/create",
		Tags:   swap.Event{Kind: swap.EventCreated, ID: 4, Creator: creator, Recipient: recipient}.Tags(),
	})
	p.HandleEvent(app.Event{
		Height: 4,
		Path:   "swap/execute",
		Tags:   swap.Event{Kind: swap.EventExecuted, ID: 4}.Tags(),
	})

	var created Message
	require.NoError(t, json.Unmarshal([]byte(receive(t, all).Payload), &created))
	assert.Equal(t, Message{
		Event:  swap.Event{Kind: swap.EventCreated, ID: 4, Creator: creator, Recipient: recipient},
		Height: 3,
	}, created)

	var next Message
	require.NoError(t, json.Unmarshal([]byte(receive(t, all).Payload), &next))
	assert.Equal(t, swap.EventExecuted, next.Kind)

	msg := receive(t, executed)
	assert.Equal(t, ChannelPrefix+"executed", msg.Channel)
	var got Message
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, swap.EventExecuted, got.Kind)
	assert.Equal(t, int64(4), got.Height)

	// The mint produced nothing.
	select {
	case extra := <-all.Channel():
		t.Fatalf("unexpected message on %s: %s", extra.Channel, extra.Payload)
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SwapEvents.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SwapEvents.WithLabelValues("executed")))
}

func TestPublisherDropsWhenFull(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := metrics.New()
	p := New(nil, logger, m, 1)

	ev := app.Event{Height: 1, Tags: swap.Event{Kind: swap.EventCancelled, ID: 1}.Tags()}
	p.HandleEvent(ev)
	p.HandleEvent(ev)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Dropped))
	assert.Equal(t, 1, len(hook.Entries))
}

func TestConnect(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := miniredis.RunT(t)

	client, err := Connect(context.Background(), "redis://"+s.Addr(), time.Second, logger)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = Connect(context.Background(), "not a url", time.Second, logger)
	assert.Error(t, err)

	down, err := miniredis.Run()
	require.NoError(t, err)
	addr := down.Addr()
	down.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err = Connect(ctx, "redis://"+addr, time.Second, logger)
	assert.Error(t, err)
}
