package swap

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
// Contracts referenced by swaps are resolved through given directory.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, dir Directory) {
	registry := NewRegistry()
	resolver := NewResolver(dir)
	r.Handle(&CreateSwapMsg{}, CreateSwapHandler{auth: auth, registry: registry, resolver: resolver})
	r.Handle(&ExecuteSwapMsg{}, ExecuteSwapHandler{auth: auth, registry: registry, resolver: resolver})
	r.Handle(&CancelSwapMsg{}, CancelSwapHandler{auth: auth, registry: registry})
}

// RegisterQuery will register swaps as "/swaps" together with the
// "/swaps/creator" and "/swaps/recipient" indexes.
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("swaps", qr)
}

// CreateSwapHandler creates pending swaps offered by the main signer.
type CreateSwapHandler struct {
	auth     x.Authenticator
	registry Registry
	resolver Resolver
}

var _ weave.Handler = CreateSwapHandler{}

func (h CreateSwapHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	builder := NewBuilder(h.registry, h.resolver, nil)
	if err := builder.Validate(db, caller, msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver stores the swap and returns its id, 8 bytes big endian, as the
// result data.
func (h CreateSwapHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	emitter, tags := deliverEmitter()
	id, err := NewBuilder(h.registry, h.resolver, emitter).CreateSwap(ctx, db, caller, msg)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: SwapKey(id), Tags: tags.Tags()}, nil
}

func (h CreateSwapHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateSwapMsg, weave.Address, error) {
	var msg CreateSwapMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	return &msg, signer.Address(), nil
}

// ExecuteSwapHandler completes a pending swap. It must be signed by one of
// the participants.
type ExecuteSwapHandler struct {
	auth     x.Authenticator
	registry Registry
	resolver Resolver
}

var _ weave.Handler = ExecuteSwapHandler{}

func (h ExecuteSwapHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg ExecuteSwapMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.registry.Get(db, msg.SwapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != StatusPending {
		return nil, errors.Wrapf(errors.ErrInvalidState, "swap %d is %s", msg.SwapID, swap.Status)
	}
	if !x.HasAnyAddress(ctx, h.auth, swap.Creator, swap.Recipient) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "not a participant of swap %d", msg.SwapID)
	}
	return &weave.CheckResult{}, nil
}

func (h ExecuteSwapHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ExecuteSwapMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := callerOf(ctx, db, h.auth, h.registry, msg.SwapID)
	if err != nil {
		return nil, err
	}
	emitter, tags := deliverEmitter()
	if _, err := NewExecutor(h.registry, h.resolver, emitter).ExecuteSwap(ctx, db, msg.SwapID, caller); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: SwapKey(msg.SwapID), Tags: tags.Tags()}, nil
}

// CancelSwapHandler closes a pending swap. It must be signed by one of the
// participants.
type CancelSwapHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ weave.Handler = CancelSwapHandler{}

func (h CancelSwapHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg CancelSwapMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.registry.Get(db, msg.SwapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != StatusPending {
		return nil, errors.Wrapf(errors.ErrInvalidState, "swap %d is %s", msg.SwapID, swap.Status)
	}
	if !x.HasAnyAddress(ctx, h.auth, swap.Creator, swap.Recipient) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "not a participant of swap %d", msg.SwapID)
	}
	return &weave.CheckResult{}, nil
}

func (h CancelSwapHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg CancelSwapMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := callerOf(ctx, db, h.auth, h.registry, msg.SwapID)
	if err != nil {
		return nil, err
	}
	emitter, tags := deliverEmitter()
	if err := NewCanceller(h.registry, emitter).CancelSwap(ctx, db, msg.SwapID, caller); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: SwapKey(msg.SwapID), Tags: tags.Tags()}, nil
}

// callerOf returns the authenticated participant of the swap. When no
// participant signed, the main signer is returned and rejected later on.
func callerOf(ctx weave.Context, db weave.ReadOnlyKVStore, auth x.Authenticator, registry Registry, id uint64) (weave.Address, error) {
	swap, err := registry.Get(db, id)
	if err != nil {
		return nil, err
	}
	if addr := participant(ctx, auth, swap); addr != nil {
		return addr, nil
	}
	if signer := x.MainSigner(ctx, auth); signer != nil {
		return signer.Address(), nil
	}
	return nil, nil
}

func participant(ctx weave.Context, auth x.Authenticator, swap *Swap) weave.Address {
	for _, addr := range swap.Participants() {
		if auth.HasAddress(ctx, addr) {
			return addr
		}
	}
	return nil
}
