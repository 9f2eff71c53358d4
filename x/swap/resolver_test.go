package swap_test

import (
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
)

func TestResolverComplianceGate(t *testing.T) {
	w := newWorld(t)
	partial := weavetest.NewCondition().Address()
	nothing := weavetest.NewCondition().Address()

	resolver := swap.NewResolver(swap.Directories{
		staticDirectory{string(partial): ownerOnly{}},
		nft.NewDirectory(),
	})

	cases := map[string]struct {
		addr    weave.Address
		wantErr *errors.Error
	}{
		"nft contract":       {addr: w.contract.Address()},
		"partial capability": {addr: partial, wantErr: swap.ErrNotCompliant},
		"nothing deployed":   {addr: nothing, wantErr: swap.ErrNotCompliant},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, err := resolver.Resolve(w.db, tc.addr)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil && c == nil {
				t.Fatal("no contract returned")
			}
		})
	}
}

func TestResolverSessionResolvesOnce(t *testing.T) {
	w := newWorld(t)
	other := deployContract(t, w.db, "Other")

	dir := &countingDirectory{Directory: nft.NewDirectory()}
	session := swap.NewResolver(dir).Session()

	for _, addr := range []weave.Address{w.contract.Address(), other.Address(), w.contract.Address(), other.Address()} {
		if _, err := session.Resolve(w.db, addr); err != nil {
			t.Fatalf("cannot resolve %s: %s", addr, err)
		}
	}
	assert.Equal(t, 2, dir.calls)
	assert.Equal(t, 2, session.Lookups())

	// A new session starts with an empty cache.
	if _, err := swap.NewResolver(dir).Session().Resolve(w.db, w.contract.Address()); err != nil {
		t.Fatalf("cannot resolve: %s", err)
	}
	assert.Equal(t, 3, dir.calls)
}

func TestDirectoriesFirstMatchWins(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	dirs := swap.Directories{
		staticDirectory{},
		staticDirectory{string(addr): "first"},
		staticDirectory{string(addr): "second"},
	}
	got, err := dirs.Lookup(nil, addr)
	assert.Nil(t, err)
	assert.Equal(t, "first", got)

	_, err = dirs.Lookup(nil, weavetest.NewCondition().Address())
	assert.IsErr(t, errors.ErrNotFound, err)
}
