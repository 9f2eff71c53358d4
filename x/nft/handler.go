package nft

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	dir := NewDirectory()
	r.Handle(&CreateContractMsg{}, CreateContractHandler{auth: auth})
	r.Handle(&MintMsg{}, MintHandler{auth: auth, dir: dir})
	r.Handle(&SetApprovalForAllMsg{}, SetApprovalForAllHandler{auth: auth, dir: dir})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, dir: dir})
}

// RegisterQuery registers contracts as "/nft/contracts", tokens as
// "/nft/tokens" and approvals as "/nft/approvals", together with their
// indexes.
func RegisterQuery(qr weave.QueryRouter) {
	NewContractBucket().Register("nft/contracts", qr)
	NewTokenBucket().Register("nft/tokens", qr)
	NewApprovalBucket().Register("nft/approvals", qr)
}

// CreateContractHandler deploys new contracts.
type CreateContractHandler struct {
	auth x.Authenticator
}

var _ weave.Handler = CreateContractHandler{}

func (h CreateContractHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver stores the contract and returns its address as the result data.
func (h CreateContractHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, minter, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	c, err := CreateContract(db, minter, msg.Name, msg.Symbol)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: c.Address}, nil
}

func (h CreateContractHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateContractMsg, weave.Address, error) {
	var msg CreateContractMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	minter := msg.Minter
	if minter == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
		}
		minter = signer.Address()
	}
	return &msg, minter, nil
}

// MintHandler issues new tokens. Only the contract minter is allowed to mint.
type MintHandler struct {
	auth x.Authenticator
	dir  Directory
}

var _ weave.Handler = MintHandler{}

func (h MintHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h MintHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := contract.Mint(db, msg.TokenID, msg.Owner); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: TokenKey(msg.Contract, msg.TokenID)}, nil
}

func (h MintHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*MintMsg, *TokenContract, error) {
	var msg MintMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := h.dir.Contract(db, msg.Contract)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, contract.Minter()) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "minter signature required")
	}
	return &msg, contract, nil
}

// SetApprovalForAllHandler grants and revokes operator approvals of the main
// signer.
type SetApprovalForAllHandler struct {
	auth x.Authenticator
	dir  Directory
}

var _ weave.Handler = SetApprovalForAllHandler{}

func (h SetApprovalForAllHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h SetApprovalForAllHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := contract.SetApprovalForAll(db, owner, msg.Operator, msg.Approved); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h SetApprovalForAllHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetApprovalForAllMsg, weave.Address, *TokenContract, error) {
	var msg SetApprovalForAllMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	owner := signer.Address()
	if owner.Equals(msg.Operator) {
		return nil, nil, nil, errors.Field("Operator", errors.ErrInput, "owner cannot be its own operator")
	}
	contract, err := h.dir.Contract(db, msg.Contract)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, owner, contract, nil
}

// TransferHandler moves a token on behalf of its owner or an approved
// operator.
type TransferHandler struct {
	auth x.Authenticator
	dir  Directory
}

var _ weave.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, operator, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := contract.TransferFrom(db, operator, msg.From, msg.To, msg.TokenID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

// validate returns the authenticated address acting on the token. The owner
// signature takes precedence over any approved operator.
func (h TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, weave.Address, *TokenContract, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := h.dir.Contract(db, msg.Contract)
	if err != nil {
		return nil, nil, nil, err
	}
	if h.auth.HasAddress(ctx, msg.From) {
		return &msg, msg.From, contract, nil
	}
	for _, addr := range x.GetAddresses(ctx, h.auth) {
		ok, err := contract.IsApprovedForAll(db, msg.From, addr)
		if err != nil {
			return nil, nil, nil, err
		}
		if ok {
			return &msg, addr, contract, nil
		}
	}
	return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner or operator signature required")
}
