package orm

import (
	"encoding/binary"
	"math"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Sequence is a persistent counter stored under _s.<bucket>:<name>. Its
// values grow both as integers and as big endian keys, so they serve as
// ordered primary keys.
type Sequence struct {
	id []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the new value encoded.
func (s *Sequence) NextVal(db weave.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// NextInt advances the counter and returns the new value.
func (s *Sequence) NextInt(db weave.KVStore) (int64, error) {
	n, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	if n == math.MaxInt64 {
		return 0, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.id)
	}
	n++
	if err := db.Set(s.id, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(err, "store sequence")
	}
	return n, nil
}

// Latest is the last value handed out, zero for a fresh counter.
func (s *Sequence) Latest(db weave.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "load sequence")
	}
	return DecodeSequence(raw)
}

// DecodeSequence reads an encoded value. Nil decodes to zero.
func DecodeSequence(raw []byte) (int64, error) {
	switch {
	case raw == nil:
		return 0, nil
	case len(raw) != 8:
		return 0, errors.Wrapf(errors.ErrInput, "sequence value must be 8 bytes, got %d", len(raw))
	}
	n := binary.BigEndian.Uint64(raw)
	if n > math.MaxInt64 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence value")
	}
	return int64(n), nil
}

// EncodeSequence writes n as 8 bytes big endian.
func EncodeSequence(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}
