package x_test

import (
	"context"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x"
)

func TestCtxAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()

	var auth x.CtxAuth
	ctx := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(ctx)))

	ctx = auth.SetConditions(ctx, a)
	ctx = auth.SetConditions(ctx, b)
	assert.Equal(t, []weave.Condition{a, b}, auth.GetConditions(ctx))

	if !auth.HasAddress(ctx, b.Address()) {
		t.Fatal("b must be authenticated")
	}
	if auth.HasAddress(ctx, c.Address()) {
		t.Fatal("c must not be authenticated")
	}
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.Equal(t, []weave.Address{a.Address(), b.Address()}, x.GetAddresses(ctx, auth))
}

func TestMultiAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()

	var ctxAuth x.CtxAuth
	ctx := ctxAuth.SetConditions(context.Background(), a)
	auth := x.ChainAuth(ctxAuth, &weavetest.Auth{Signer: b})

	assert.Equal(t, []weave.Condition{a, b}, auth.GetConditions(ctx))
	if !x.HasAnyAddress(ctx, auth, c.Address(), b.Address()) {
		t.Fatal("b is authenticated by the static authenticator")
	}
	if x.HasAnyAddress(ctx, auth, c.Address()) {
		t.Fatal("c is not authenticated")
	}
	if x.MainSigner(context.Background(), x.ChainAuth()) != nil {
		t.Fatal("empty authenticator has no main signer")
	}
}
