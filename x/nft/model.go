package nft

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/orm"
)

const (
	maxNameLength   = 64
	maxSymbolLength = 16
)

// Contract is a deployed token contract. It is stored under its address.
type Contract struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  weave.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/nftrade/weave.Address" json:"address,omitempty"`
	// Minter is the only address allowed to issue new tokens.
	Minter weave.Address `protobuf:"bytes,3,opt,name=minter,proto3,casttype=github.com/nftrade/weave.Address" json:"minter,omitempty"`
	Name   string        `protobuf:"bytes,4,opt,name=name,proto3" json:"name,omitempty"`
	Symbol string        `protobuf:"bytes,5,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

type contractWire Contract

func (m *contractWire) Reset()         { *m = contractWire{} }
func (m *contractWire) String() string { return proto.CompactTextString(m) }
func (*contractWire) ProtoMessage()    {}

var _ orm.Model = (*Contract)(nil)

func (c *Contract) Marshal() ([]byte, error) {
	return proto.Marshal((*contractWire)(c))
}

func (c *Contract) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*contractWire)(c))
}

// Validate ensures the contract is valid.
func (c *Contract) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", c.Address.Validate())
	errs = errors.AppendField(errs, "Minter", c.Minter.Validate())
	if err := validateName(c.Name); err != nil {
		errs = errors.AppendField(errs, "Name", err)
	}
	if err := validateSymbol(c.Symbol); err != nil {
		errs = errors.AppendField(errs, "Symbol", err)
	}
	return errs
}

func (c *Contract) Copy() orm.CloneableData {
	return &Contract{
		Metadata: c.Metadata.Copy(),
		Address:  copyAddress(c.Address),
		Minter:   copyAddress(c.Minter),
		Name:     c.Name,
		Symbol:   c.Symbol,
	}
}

// Token is a single non fungible token. It is stored under TokenKey.
type Token struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Contract weave.Address   `protobuf:"bytes,2,opt,name=contract,proto3,casttype=github.com/nftrade/weave.Address" json:"contract,omitempty"`
	TokenID  uint64          `protobuf:"varint,3,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,4,opt,name=owner,proto3,casttype=github.com/nftrade/weave.Address" json:"owner,omitempty"`
}

type tokenWire Token

func (m *tokenWire) Reset()         { *m = tokenWire{} }
func (m *tokenWire) String() string { return proto.CompactTextString(m) }
func (*tokenWire) ProtoMessage()    {}

var _ orm.Model = (*Token)(nil)

func (t *Token) Marshal() ([]byte, error) {
	return proto.Marshal((*tokenWire)(t))
}

func (t *Token) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*tokenWire)(t))
}

// Validate ensures the token is valid.
func (t *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", t.Contract.Validate())
	errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	return errs
}

func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Metadata: t.Metadata.Copy(),
		Contract: copyAddress(t.Contract),
		TokenID:  t.TokenID,
		Owner:    copyAddress(t.Owner),
	}
}

// OperatorApproval declares that the operator may move all tokens of the
// owner within a contract. The approval is granted as long as the record
// exists.
type OperatorApproval struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Contract weave.Address   `protobuf:"bytes,2,opt,name=contract,proto3,casttype=github.com/nftrade/weave.Address" json:"contract,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/nftrade/weave.Address" json:"owner,omitempty"`
	Operator weave.Address   `protobuf:"bytes,4,opt,name=operator,proto3,casttype=github.com/nftrade/weave.Address" json:"operator,omitempty"`
}

type approvalWire OperatorApproval

func (m *approvalWire) Reset()         { *m = approvalWire{} }
func (m *approvalWire) String() string { return proto.CompactTextString(m) }
func (*approvalWire) ProtoMessage()    {}

var _ orm.Model = (*OperatorApproval)(nil)

func (a *OperatorApproval) Marshal() ([]byte, error) {
	return proto.Marshal((*approvalWire)(a))
}

func (a *OperatorApproval) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*approvalWire)(a))
}

func (a *OperatorApproval) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", a.Contract.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Operator", a.Operator.Validate())
	if a.Owner.Equals(a.Operator) {
		errs = errors.Append(errs,
			errors.Field("Operator", errors.ErrInput, "owner cannot be its own operator"))
	}
	return errs
}

func (a *OperatorApproval) Copy() orm.CloneableData {
	return &OperatorApproval{
		Metadata: a.Metadata.Copy(),
		Contract: copyAddress(a.Contract),
		Owner:    copyAddress(a.Owner),
		Operator: copyAddress(a.Operator),
	}
}

// ContractCondition returns the condition controlling a contract created
// with given sequence value.
func ContractCondition(seq []byte) weave.Condition {
	return weave.NewCondition("nft", "contract", seq)
}

// TokenKey returns the primary key of a token: the contract address followed
// by the big endian encoded token id.
func TokenKey(contract weave.Address, tokenID uint64) []byte {
	key := make([]byte, len(contract)+8)
	copy(key, contract)
	binary.BigEndian.PutUint64(key[len(contract):], tokenID)
	return key
}

// ApprovalKey returns the primary key of an operator approval.
func ApprovalKey(contract, owner, operator weave.Address) []byte {
	key := make([]byte, 0, len(contract)+len(owner)+len(operator))
	key = append(key, contract...)
	key = append(key, owner...)
	return append(key, operator...)
}

var contractSeq = orm.NewSequence("contract", "id")

// NewContractBucket returns a bucket storing contracts by their address.
func NewContractBucket() orm.ModelBucket {
	return orm.NewModelBucket("contract", &Contract{},
		orm.WithIndex("minter", idxMinter, false),
	)
}

// NewTokenBucket returns a bucket storing tokens by TokenKey, indexed by
// their owner and their contract.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token", &Token{},
		orm.WithIndex("owner", idxOwner, false),
		orm.WithIndex("contract", idxContract, false),
	)
}

// NewApprovalBucket returns a bucket storing operator approvals by
// ApprovalKey.
func NewApprovalBucket() orm.ModelBucket {
	return orm.NewModelBucket("approval", &OperatorApproval{},
		orm.WithIndex("owner", idxApprovalOwner, false),
	)
}

func idxMinter(obj orm.Object) ([]byte, error) {
	c, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return c.Minter, nil
}

func idxOwner(obj orm.Object) ([]byte, error) {
	t, ok := obj.Value().(*Token)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return t.Owner, nil
}

func idxContract(obj orm.Object) ([]byte, error) {
	t, ok := obj.Value().(*Token)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return t.Contract, nil
}

func idxApprovalOwner(obj orm.Object) ([]byte, error) {
	a, ok := obj.Value().(*OperatorApproval)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return a.Owner, nil
}

func validateName(name string) error {
	if name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if len(name) > maxNameLength {
		return errors.Wrapf(errors.ErrInput, "name longer than %d characters", maxNameLength)
	}
	return nil
}

func validateSymbol(symbol string) error {
	if symbol == "" {
		return errors.Wrap(errors.ErrEmpty, "symbol")
	}
	if len(symbol) > maxSymbolLength {
		return errors.Wrapf(errors.ErrInput, "symbol longer than %d characters", maxSymbolLength)
	}
	return nil
}

func copyAddress(a weave.Address) weave.Address {
	if a == nil {
		return nil
	}
	cpy := make(weave.Address, len(a))
	copy(cpy, a)
	return cpy
}
