package app

import (
	"context"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/store"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
)

func TestChain(t *testing.T) {
	d1 := &weavetest.Decorator{}
	d2 := &weavetest.Decorator{}
	var missing *weavetest.Decorator
	h := &weavetest.Handler{}

	stack := ChainDecorators(d1, nil, missing).Chain(d2).WithHandler(h)

	_, err := stack.Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.Nil(t, err)
	_, err = stack.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.Nil(t, err)

	for _, c := range []interface {
		CheckCallCount() int
		DeliverCallCount() int
	}{d1, d2, h} {
		assert.Equal(t, 1, c.CheckCallCount())
		assert.Equal(t, 1, c.DeliverCallCount())
	}
}

func TestChainStopsOnError(t *testing.T) {
	d1 := &weavetest.Decorator{DeliverErr: errors.ErrUnauthorized}
	h := &weavetest.Handler{}
	var stack weave.Handler = ChainDecorators(d1).WithHandler(h)

	_, err := stack.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 0, h.DeliverCallCount())
}
