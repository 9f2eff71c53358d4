package orm

import (
	"github.com/gogo/protobuf/proto"

	"github.com/nftrade/weave/errors"
)

// Counter is a minimal model used by the tests of this package.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

type counterWire Counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

var _ Model = (*Counter)(nil)

func (c *Counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterWire)(c))
}

func (c *Counter) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*counterWire)(c))
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// otherModel is never stored in a counter bucket.
type otherModel struct {
	Counter
}
