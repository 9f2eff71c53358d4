package swap

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

const (
	pathCreateSwapMsg  = "swap/create"
	pathExecuteSwapMsg = "swap/execute"
	pathCancelSwapMsg  = "swap/cancel"
)

var _ weave.Msg = (*CreateSwapMsg)(nil)
var _ weave.Msg = (*ExecuteSwapMsg)(nil)
var _ weave.Msg = (*CancelSwapMsg)(nil)

// CreateSwapMsg offers the first SplitIndex assets of the signer in exchange
// for the remaining assets of the recipient. AssetContracts and TokenIDs are
// parallel lists.
type CreateSwapMsg struct {
	Metadata       *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Recipient      weave.Address   `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/nftrade/weave.Address" json:"recipient,omitempty"`
	SplitIndex     uint32          `protobuf:"varint,3,opt,name=split_index,json=splitIndex,proto3" json:"split_index,omitempty"`
	AssetContracts [][]byte        `protobuf:"bytes,4,rep,name=asset_contracts,json=assetContracts,proto3" json:"asset_contracts,omitempty"`
	TokenIDs       []uint64        `protobuf:"varint,5,rep,packed,name=token_ids,json=tokenIds,proto3" json:"token_ids,omitempty"`
	AuxParam       uint64          `protobuf:"varint,6,opt,name=aux_param,json=auxParam,proto3" json:"aux_param,omitempty"`
}

type createSwapMsgWire CreateSwapMsg

func (m *createSwapMsgWire) Reset()         { *m = createSwapMsgWire{} }
func (m *createSwapMsgWire) String() string { return proto.CompactTextString(m) }
func (*createSwapMsgWire) ProtoMessage()    {}

func (m *CreateSwapMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createSwapMsgWire)(m))
}

func (m *CreateSwapMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createSwapMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (CreateSwapMsg) Path() string {
	return pathCreateSwapMsg
}

// Validate checks the message structure. Rules that depend on the signer or
// the stored configuration are enforced by the Builder.
func (m *CreateSwapMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if err := m.Recipient.Validate(); err != nil {
		errs = errors.AppendField(errs, "Recipient", errors.Wrap(ErrInvalidSwapSpec, err.Error()))
	}
	if len(m.AssetContracts) != len(m.TokenIDs) {
		errs = errors.Append(errs, errors.Field("TokenIDs", ErrInvalidSwapSpec,
			"%d contracts but %d token ids", len(m.AssetContracts), len(m.TokenIDs)))
	}
	if len(m.AssetContracts) == 0 {
		errs = errors.Append(errs, errors.Field("AssetContracts", ErrInvalidSwapSpec, "no assets"))
	}
	if int(m.SplitIndex) > len(m.AssetContracts) {
		errs = errors.Append(errs, errors.Field("SplitIndex", ErrInvalidSwapSpec,
			"split index %d out of %d assets", m.SplitIndex, len(m.AssetContracts)))
	}
	for i, c := range m.AssetContracts {
		if err := weave.Address(c).Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("AssetContracts", ErrInvalidSwapSpec, "contract %d: %s", i, err))
		}
	}
	return errs
}

// Assets returns the referenced assets in the message order.
func (m *CreateSwapMsg) Assets() []*AssetRef {
	n := len(m.AssetContracts)
	if len(m.TokenIDs) < n {
		n = len(m.TokenIDs)
	}
	assets := make([]*AssetRef, n)
	for i := 0; i < n; i++ {
		assets[i] = &AssetRef{Contract: weave.Address(m.AssetContracts[i]), TokenID: m.TokenIDs[i]}
	}
	return assets
}

// ExecuteSwapMsg performs all transfers of a pending swap.
type ExecuteSwapMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwapID   uint64          `protobuf:"varint,2,opt,name=swap_id,json=swapId,proto3" json:"swap_id"`
}

type executeSwapMsgWire ExecuteSwapMsg

func (m *executeSwapMsgWire) Reset()         { *m = executeSwapMsgWire{} }
func (m *executeSwapMsgWire) String() string { return proto.CompactTextString(m) }
func (*executeSwapMsgWire) ProtoMessage()    {}

func (m *ExecuteSwapMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*executeSwapMsgWire)(m))
}

func (m *ExecuteSwapMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*executeSwapMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (ExecuteSwapMsg) Path() string {
	return pathExecuteSwapMsg
}

func (m *ExecuteSwapMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// CancelSwapMsg closes a pending swap without moving any asset.
type CancelSwapMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	SwapID   uint64          `protobuf:"varint,2,opt,name=swap_id,json=swapId,proto3" json:"swap_id"`
}

type cancelSwapMsgWire CancelSwapMsg

func (m *cancelSwapMsgWire) Reset()         { *m = cancelSwapMsgWire{} }
func (m *cancelSwapMsgWire) String() string { return proto.CompactTextString(m) }
func (*cancelSwapMsgWire) ProtoMessage()    {}

func (m *CancelSwapMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*cancelSwapMsgWire)(m))
}

func (m *CancelSwapMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*cancelSwapMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (CancelSwapMsg) Path() string {
	return pathCancelSwapMsg
}

func (m *CancelSwapMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}
