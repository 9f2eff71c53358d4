package swap

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/orm"
)

// Status is the lifecycle state of a swap. Pending is the only non terminal
// state.
type Status int32

const (
	StatusInvalid   Status = 0
	StatusPending   Status = 1
	StatusExecuted  Status = 2
	StatusCancelled Status = 3
)

var statusNames = map[Status]string{
	StatusInvalid:   "Invalid",
	StatusPending:   "Pending",
	StatusExecuted:  "Executed",
	StatusCancelled: "Cancelled",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Validate returns an error if the status is not one of the known states.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusCancelled {
		return errors.Wrapf(errors.ErrInput, "status %d", s)
	}
	return nil
}

// AssetRef points to a single token of a contract.
type AssetRef struct {
	Contract weave.Address `protobuf:"bytes,1,opt,name=contract,proto3,casttype=github.com/nftrade/weave.Address" json:"contract,omitempty"`
	TokenID  uint64        `protobuf:"varint,2,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
}

func (m *AssetRef) Reset()         { *m = AssetRef{} }
func (m *AssetRef) String() string { return proto.CompactTextString(m) }
func (*AssetRef) ProtoMessage()    {}

func (a *AssetRef) Validate() error {
	return errors.AppendField(nil, "Contract", a.Contract.Validate())
}

// Swap is an offer to exchange the assets of the creator, stored before
// SplitIndex, for the assets of the recipient.
type Swap struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID        uint64          `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	Creator   weave.Address   `protobuf:"bytes,3,opt,name=creator,proto3,casttype=github.com/nftrade/weave.Address" json:"creator,omitempty"`
	Recipient weave.Address   `protobuf:"bytes,4,opt,name=recipient,proto3,casttype=github.com/nftrade/weave.Address" json:"recipient,omitempty"`
	Assets    []*AssetRef     `protobuf:"bytes,5,rep,name=assets,proto3" json:"assets,omitempty"`
	// SplitIndex is the number of assets offered by the creator.
	SplitIndex uint32 `protobuf:"varint,6,opt,name=split_index,json=splitIndex,proto3" json:"split_index,omitempty"`
	Status     Status `protobuf:"varint,7,opt,name=status,proto3,enum=swap.Status" json:"status,omitempty"`
	// AuxParam is stored with the swap and never interpreted.
	AuxParam  uint64         `protobuf:"varint,8,opt,name=aux_param,json=auxParam,proto3" json:"aux_param,omitempty"`
	CreatedAt weave.UnixTime `protobuf:"varint,9,opt,name=created_at,json=createdAt,proto3,casttype=github.com/nftrade/weave.UnixTime" json:"created_at,omitempty"`
}

type swapWire Swap

func (m *swapWire) Reset()         { *m = swapWire{} }
func (m *swapWire) String() string { return proto.CompactTextString(m) }
func (*swapWire) ProtoMessage()    {}

var _ orm.Model = (*Swap)(nil)

func (s *Swap) Marshal() ([]byte, error) {
	return proto.Marshal((*swapWire)(s))
}

func (s *Swap) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*swapWire)(s))
}

// Validate ensures the swap is valid.
func (s *Swap) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Creator", s.Creator.Validate())
	errs = errors.AppendField(errs, "Recipient", s.Recipient.Validate())
	if s.Creator.Equals(s.Recipient) {
		errs = errors.Append(errs,
			errors.Field("Recipient", errors.ErrInput, "recipient must differ from the creator"))
	}
	if len(s.Assets) == 0 {
		errs = errors.Append(errs,
			errors.Field("Assets", errors.ErrEmpty, "no assets"))
	}
	for i, a := range s.Assets {
		if a == nil {
			errs = errors.Append(errs, errors.Field("Assets", errors.ErrEmpty, "asset %d", i))
			continue
		}
		errs = errors.AppendField(errs, "Assets", a.Validate())
	}
	if int(s.SplitIndex) > len(s.Assets) {
		errs = errors.Append(errs,
			errors.Field("SplitIndex", errors.ErrInput, "split index %d out of %d assets", s.SplitIndex, len(s.Assets)))
	}
	errs = errors.AppendField(errs, "Status", s.Status.Validate())
	errs = errors.AppendField(errs, "CreatedAt", s.CreatedAt.Validate())
	return errs
}

func (s *Swap) Copy() orm.CloneableData {
	assets := make([]*AssetRef, len(s.Assets))
	for i, a := range s.Assets {
		if a == nil {
			continue
		}
		cpy := *a
		cpy.Contract = append(weave.Address(nil), a.Contract...)
		assets[i] = &cpy
	}
	return &Swap{
		Metadata:   s.Metadata.Copy(),
		ID:         s.ID,
		Creator:    append(weave.Address(nil), s.Creator...),
		Recipient:  append(weave.Address(nil), s.Recipient...),
		Assets:     assets,
		SplitIndex: s.SplitIndex,
		Status:     s.Status,
		AuxParam:   s.AuxParam,
		CreatedAt:  s.CreatedAt,
	}
}

// Participants returns the creator and the recipient, in this order.
func (s *Swap) Participants() [2]weave.Address {
	return [2]weave.Address{s.Creator, s.Recipient}
}

// IsParticipant returns true if given address is the creator or the
// recipient of the swap.
func (s *Swap) IsParticipant(addr weave.Address) bool {
	return s.Creator.Equals(addr) || s.Recipient.Equals(addr)
}

// Owner returns the participant expected to own the asset at given index.
func (s *Swap) Owner(index int) weave.Address {
	if index < int(s.SplitIndex) {
		return s.Creator
	}
	return s.Recipient
}

// Counterparty returns the participant receiving the asset at given index.
func (s *Swap) Counterparty(index int) weave.Address {
	if index < int(s.SplitIndex) {
		return s.Recipient
	}
	return s.Creator
}

// SwapKey returns the big endian encoded swap id that is used as the
// primary key.
func SwapKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return bz
}

// ParseSwapKey decodes a key created by SwapKey.
func ParseSwapKey(key []byte) (uint64, error) {
	if len(key) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "swap id must be 8 bytes, got %d", len(key))
	}
	return binary.BigEndian.Uint64(key), nil
}
