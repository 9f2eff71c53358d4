package nft

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

const (
	pathCreateContractMsg    = "nft/create_contract"
	pathMintMsg              = "nft/mint"
	pathSetApprovalForAllMsg = "nft/set_approval_for_all"
	pathTransferMsg          = "nft/transfer"
)

var _ weave.Msg = (*CreateContractMsg)(nil)
var _ weave.Msg = (*MintMsg)(nil)
var _ weave.Msg = (*SetApprovalForAllMsg)(nil)
var _ weave.Msg = (*TransferMsg)(nil)

// CreateContractMsg deploys a new token contract. When Minter is not set,
// the main signer becomes the minter.
type CreateContractMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Minter   weave.Address   `protobuf:"bytes,2,opt,name=minter,proto3,casttype=github.com/nftrade/weave.Address" json:"minter,omitempty"`
	Name     string          `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	Symbol   string          `protobuf:"bytes,4,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

type createContractMsgWire CreateContractMsg

func (m *createContractMsgWire) Reset()         { *m = createContractMsgWire{} }
func (m *createContractMsgWire) String() string { return proto.CompactTextString(m) }
func (*createContractMsgWire) ProtoMessage()    {}

func (m *CreateContractMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createContractMsgWire)(m))
}

func (m *CreateContractMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createContractMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (CreateContractMsg) Path() string {
	return pathCreateContractMsg
}

func (m *CreateContractMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Minter != nil {
		errs = errors.AppendField(errs, "Minter", m.Minter.Validate())
	}
	if err := validateName(m.Name); err != nil {
		errs = errors.AppendField(errs, "Name", err)
	}
	if err := validateSymbol(m.Symbol); err != nil {
		errs = errors.AppendField(errs, "Symbol", err)
	}
	return errs
}

// MintMsg issues a new token. It must be signed by the contract minter.
type MintMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Contract weave.Address   `protobuf:"bytes,2,opt,name=contract,proto3,casttype=github.com/nftrade/weave.Address" json:"contract,omitempty"`
	TokenID  uint64          `protobuf:"varint,3,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,4,opt,name=owner,proto3,casttype=github.com/nftrade/weave.Address" json:"owner,omitempty"`
}

type mintMsgWire MintMsg

func (m *mintMsgWire) Reset()         { *m = mintMsgWire{} }
func (m *mintMsgWire) String() string { return proto.CompactTextString(m) }
func (*mintMsgWire) ProtoMessage()    {}

func (m *MintMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*mintMsgWire)(m))
}

func (m *MintMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*mintMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (MintMsg) Path() string {
	return pathMintMsg
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", m.Contract.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// SetApprovalForAllMsg grants or revokes the operator the right to move all
// tokens of the signer within the contract.
type SetApprovalForAllMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Contract weave.Address   `protobuf:"bytes,2,opt,name=contract,proto3,casttype=github.com/nftrade/weave.Address" json:"contract,omitempty"`
	Operator weave.Address   `protobuf:"bytes,3,opt,name=operator,proto3,casttype=github.com/nftrade/weave.Address" json:"operator,omitempty"`
	Approved bool            `protobuf:"varint,4,opt,name=approved,proto3" json:"approved,omitempty"`
}

type setApprovalForAllMsgWire SetApprovalForAllMsg

func (m *setApprovalForAllMsgWire) Reset()         { *m = setApprovalForAllMsgWire{} }
func (m *setApprovalForAllMsgWire) String() string { return proto.CompactTextString(m) }
func (*setApprovalForAllMsgWire) ProtoMessage()    {}

func (m *SetApprovalForAllMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*setApprovalForAllMsgWire)(m))
}

func (m *SetApprovalForAllMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*setApprovalForAllMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (SetApprovalForAllMsg) Path() string {
	return pathSetApprovalForAllMsg
}

func (m *SetApprovalForAllMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", m.Contract.Validate())
	errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	return errs
}

// TransferMsg moves a token from its owner to a new one. The signer must be
// the owner or an operator approved by the owner.
type TransferMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Contract weave.Address   `protobuf:"bytes,2,opt,name=contract,proto3,casttype=github.com/nftrade/weave.Address" json:"contract,omitempty"`
	From     weave.Address   `protobuf:"bytes,3,opt,name=from,proto3,casttype=github.com/nftrade/weave.Address" json:"from,omitempty"`
	To       weave.Address   `protobuf:"bytes,4,opt,name=to,proto3,casttype=github.com/nftrade/weave.Address" json:"to,omitempty"`
	TokenID  uint64          `protobuf:"varint,5,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
}

type transferMsgWire TransferMsg

func (m *transferMsgWire) Reset()         { *m = transferMsgWire{} }
func (m *transferMsgWire) String() string { return proto.CompactTextString(m) }
func (*transferMsgWire) ProtoMessage()    {}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgWire)(m))
}

func (m *TransferMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*transferMsgWire)(m))
}

// Path fulfills weave.Msg interface to allow routing
func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", m.Contract.Validate())
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}
