package swap

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Canceller closes pending swaps without moving any asset.
type Canceller struct {
	registry Registry
	emitter  Emitter
}

func NewCanceller(registry Registry, emitter Emitter) *Canceller {
	return &Canceller{registry: registry, emitter: emitter}
}

// CancelSwap moves a pending swap to Cancelled. Either participant may
// cancel.
func (c *Canceller) CancelSwap(ctx weave.Context, db weave.KVStore, id uint64, caller weave.Address) error {
	swap, err := c.registry.Get(db, id)
	if err != nil {
		return err
	}
	if !swap.IsParticipant(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "not a participant of swap %d", id)
	}
	if err := c.registry.SetStatus(db, id, StatusCancelled); err != nil {
		return err
	}
	c.emitter.SwapCancelled(ctx, id)
	return nil
}
