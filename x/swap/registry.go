package swap

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/orm"
)

const (
	indexCreator   = "creator"
	indexRecipient = "recipient"
)

// Registry stores swaps under their id. Swaps are never deleted.
type Registry struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewRegistry returns a registry over the swap bucket.
func NewRegistry() Registry {
	return Registry{
		bucket: NewBucket(),
		seq:    swapSeq,
	}
}

var swapSeq = orm.NewSequence("swap", "id")

// NewBucket returns the bucket storing swaps, indexed by creator and
// recipient.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("swap", &Swap{},
		orm.WithIDSequence(swapSeq),
		orm.WithIndex(indexCreator, idxCreator, false),
		orm.WithIndex(indexRecipient, idxRecipient, false),
	)
}

func toSwap(obj orm.Object) (*Swap, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	s, ok := obj.Value().(*Swap)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Swap")
	}
	return s, nil
}

func idxCreator(obj orm.Object) ([]byte, error) {
	s, err := toSwap(obj)
	if err != nil {
		return nil, err
	}
	return s.Creator, nil
}

func idxRecipient(obj orm.Object) ([]byte, error) {
	s, err := toSwap(obj)
	if err != nil {
		return nil, err
	}
	return s.Recipient, nil
}

// Allocate reserves the next swap id. The first id is 0.
func (r Registry) Allocate(db weave.KVStore) (uint64, error) {
	n, err := r.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "swap sequence")
	}
	return uint64(n - 1), nil
}

// Insert stores a new swap. It fails if a swap with the same id exists.
func (r Registry) Insert(db weave.KVStore, s *Swap) error {
	key := SwapKey(s.ID)
	switch err := r.bucket.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "swap %d", s.ID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if _, err := r.bucket.Put(db, key, s); err != nil {
		return errors.Wrapf(err, "swap %d", s.ID)
	}
	return nil
}

// Get loads a swap. ErrNotFound is returned for an unknown id.
func (r Registry) Get(db weave.ReadOnlyKVStore, id uint64) (*Swap, error) {
	var s Swap
	if err := r.bucket.One(db, SwapKey(id), &s); err != nil {
		return nil, errors.Wrapf(err, "swap %d", id)
	}
	return &s, nil
}

// SetStatus moves a pending swap into a terminal state.
func (r Registry) SetStatus(db weave.KVStore, id uint64, status Status) error {
	if status != StatusExecuted && status != StatusCancelled {
		return errors.Wrapf(errors.ErrInput, "cannot move swap %d to %s", id, status)
	}
	s, err := r.Get(db, id)
	if err != nil {
		return err
	}
	if s.Status != StatusPending {
		return errors.Wrapf(errors.ErrInvalidState, "swap %d is %s", id, s.Status)
	}
	s.Status = status
	if _, err := r.bucket.Put(db, SwapKey(id), s); err != nil {
		return errors.Wrapf(err, "swap %d", id)
	}
	return nil
}

// ByCreator returns all swaps created by given address.
func (r Registry) ByCreator(db weave.ReadOnlyKVStore, addr weave.Address) ([]*Swap, error) {
	return r.byIndex(db, indexCreator, addr)
}

// ByRecipient returns all swaps offered to given address.
func (r Registry) ByRecipient(db weave.ReadOnlyKVStore, addr weave.Address) ([]*Swap, error) {
	return r.byIndex(db, indexRecipient, addr)
}

func (r Registry) byIndex(db weave.ReadOnlyKVStore, index string, addr weave.Address) ([]*Swap, error) {
	var swaps []*Swap
	if _, err := r.bucket.ByIndex(db, index, addr, &swaps); err != nil {
		return nil, errors.Wrapf(err, "%s index", index)
	}
	return swaps, nil
}

// Participants returns the participant of a swap at given index: 0 for the
// creator and 1 for the recipient.
func (r Registry) Participants(db weave.ReadOnlyKVStore, id uint64, index int) (weave.Address, error) {
	if index != 0 && index != 1 {
		return nil, errors.Wrapf(errors.ErrInput, "participant index %d", index)
	}
	s, err := r.Get(db, id)
	if err != nil {
		return nil, err
	}
	return s.Participants()[index], nil
}
