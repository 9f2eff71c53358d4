package swap

import (
	"fmt"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// OperatorCondition is the condition of the party that moves tokens on
// behalf of the swap participants.
func OperatorCondition() weave.Condition {
	return weave.NewCondition("swap", "operator", []byte("nftrade"))
}

// OperatorAddress is the address owners must approve before a swap
// referencing their tokens can be executed.
func OperatorAddress() weave.Address {
	return OperatorCondition().Address()
}

// Builder creates pending swaps.
type Builder struct {
	registry Registry
	resolver Resolver
	emitter  Emitter
}

// NewBuilder returns a builder storing swaps in given registry.
func NewBuilder(registry Registry, resolver Resolver, emitter Emitter) *Builder {
	return &Builder{registry: registry, resolver: resolver, emitter: emitter}
}

// CreateSwap validates the request, checks that every referenced contract
// is compliant and stores a pending swap. Nothing is written unless the
// swap is created.
func (b *Builder) CreateSwap(ctx weave.Context, db weave.KVStore, caller weave.Address, msg *CreateSwapMsg) (uint64, error) {
	assets, err := b.check(db, caller, msg)
	if err != nil {
		return 0, err
	}

	now, err := weave.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "creation time")
	}

	id, err := b.registry.Allocate(db)
	if err != nil {
		return 0, err
	}
	swap := &Swap{
		Metadata:   &weave.Metadata{Schema: 1},
		ID:         id,
		Creator:    caller,
		Recipient:  msg.Recipient,
		Assets:     assets,
		SplitIndex: msg.SplitIndex,
		Status:     StatusPending,
		AuxParam:   msg.AuxParam,
		CreatedAt:  weave.AsUnixTime(now),
	}
	if err := b.registry.Insert(db, swap); err != nil {
		return 0, err
	}

	b.emitter.SwapCreated(ctx, id, swap.Creator, swap.Recipient)
	return id, nil
}

// Validate runs every check of CreateSwap without writing anything.
func (b *Builder) Validate(db weave.ReadOnlyKVStore, caller weave.Address, msg *CreateSwapMsg) error {
	_, err := b.check(db, caller, msg)
	return err
}

// check returns the assets of a request that passed validation and whose
// contracts are all compliant.
func (b *Builder) check(db weave.ReadOnlyKVStore, caller weave.Address, msg *CreateSwapMsg) ([]*AssetRef, error) {
	assets, err := b.validate(db, caller, msg)
	if err != nil {
		return nil, err
	}
	session := b.resolver.Session()
	for _, a := range assets {
		if _, err := session.Resolve(db, a.Contract); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

func (b *Builder) validate(db weave.ReadOnlyKVStore, caller weave.Address, msg *CreateSwapMsg) ([]*AssetRef, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller")
	}
	if caller.Equals(msg.Recipient) {
		return nil, errors.Field("Recipient", ErrInvalidSwapSpec, "cannot swap with yourself")
	}

	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	if len(msg.AssetContracts) > int(conf.MaxAssets) {
		return nil, errors.Field("AssetContracts", ErrInvalidSwapSpec,
			"%d assets exceed the limit of %d", len(msg.AssetContracts), conf.MaxAssets)
	}

	assets := msg.Assets()
	seen := make(map[string]struct{}, len(assets))
	for i, a := range assets {
		key := fmt.Sprintf("%X/%d", a.Contract, a.TokenID)
		if _, ok := seen[key]; ok {
			return nil, errors.Field("TokenIDs", ErrInvalidSwapSpec, "asset %d is listed twice", i)
		}
		seen[key] = struct{}{}
	}
	return assets, nil
}
