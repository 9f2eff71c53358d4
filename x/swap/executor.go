package swap

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/x/utils"
)

// Executor completes pending swaps.
type Executor struct {
	registry Registry
	resolver Resolver
	emitter  Emitter
	operator weave.Address
}

// NewExecutor returns an executor acting as the swap operator.
func NewExecutor(registry Registry, resolver Resolver, emitter Emitter) *Executor {
	return &Executor{
		registry: registry,
		resolver: resolver,
		emitter:  emitter,
		operator: OperatorAddress(),
	}
}

// ExecuteSwap moves every asset of a pending swap to its counterparty.
// Ownership and approvals of all assets are verified before the first
// transfer. Either all transfers and the status change are written or
// nothing is.
func (e *Executor) ExecuteSwap(ctx weave.Context, db weave.KVStore, id uint64, caller weave.Address) (*Swap, error) {
	swap, err := e.registry.Get(db, id)
	if err != nil {
		return nil, err
	}
	if swap.Status != StatusPending {
		return nil, errors.Wrapf(errors.ErrInvalidState, "swap %d is %s", id, swap.Status)
	}
	if !swap.IsParticipant(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "not a participant of swap %d", id)
	}

	contracts, err := e.verify(db, swap)
	if err != nil {
		return nil, err
	}

	err = utils.Atomic(db, func(db weave.KVStore) error {
		for i, a := range swap.Assets {
			if err := contracts[i].TransferFrom(db, e.operator, swap.Owner(i), swap.Counterparty(i), a.TokenID); err != nil {
				return errors.Wrapf(ErrTransferFailed, "asset %d: %s", i, err)
			}
		}
		return e.registry.SetStatus(db, id, StatusExecuted)
	})
	if err != nil {
		return nil, err
	}
	swap.Status = StatusExecuted

	e.emitter.SwapExecuted(ctx, id)
	return swap, nil
}

// verify checks every asset in index order and returns the contract of each
// asset.
func (e *Executor) verify(db weave.ReadOnlyKVStore, swap *Swap) ([]AssetContract, error) {
	session := e.resolver.Session()
	contracts := make([]AssetContract, len(swap.Assets))
	for i, a := range swap.Assets {
		c, err := session.Resolve(db, a.Contract)
		if err != nil {
			return nil, errors.Wrapf(err, "asset %d", i)
		}
		want := swap.Owner(i)
		owner, err := c.OwnerOf(db, a.TokenID)
		switch {
		case errors.ErrNotFound.Is(err):
			return nil, errors.Wrapf(ErrNotOwner, "asset %d: token %d does not exist", i, a.TokenID)
		case err != nil:
			return nil, errors.Wrapf(err, "asset %d", i)
		case !owner.Equals(want):
			return nil, errors.Wrapf(ErrNotOwner, "asset %d: token %d is not owned by %s", i, a.TokenID, want)
		}
		approved, err := c.IsApprovedForAll(db, want, e.operator)
		if err != nil {
			return nil, errors.Wrapf(err, "asset %d", i)
		}
		if !approved {
			return nil, errors.Wrapf(ErrNotApproved, "asset %d: operator not approved by %s", i, want)
		}
		contracts[i] = c
	}
	return contracts, nil
}
