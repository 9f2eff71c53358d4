package x

import (
	"context"

	"github.com/nftrade/weave"
)

// Authenticator tells which conditions signed the request carried by the
// context. Handlers receive one on construction so that tests and other
// transports can plug in their own.
type Authenticator interface {
	GetConditions(weave.Context) []weave.Condition
	// HasAddress reports whether any of the conditions controls addr.
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth authenticates everything any of its members authenticates.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var conds []weave.Condition
	for _, a := range m {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the address of every authenticated condition.
func GetAddresses(ctx weave.Context, auth Authenticator) []weave.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]weave.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// MainSigner returns the first authenticated condition, or nil. The main
// signer is the caller a request acts for, for example the swap creator.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// HasAnyAddress reports whether at least one of addrs is authenticated.
func HasAnyAddress(ctx weave.Context, auth Authenticator, addrs ...weave.Address) bool {
	for _, addr := range addrs {
		if auth.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

type signersKey struct{}

// CtxAuth authenticates the conditions stored in the context. The HTTP
// layer verifies the caller and stores its condition with SetConditions.
type CtxAuth struct{}

var _ Authenticator = CtxAuth{}

// SetConditions returns a context authenticating conds on top of the
// conditions ctx already carries.
func (CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	prev, _ := ctx.Value(signersKey{}).([]weave.Condition)
	all := append(append(make([]weave.Condition, 0, len(prev)+len(conds)), prev...), conds...)
	return context.WithValue(ctx, signersKey{}, all)
}

func (CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	conds, _ := ctx.Value(signersKey{}).([]weave.Condition)
	return conds
}

func (a CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
