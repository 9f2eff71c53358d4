package nft

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/orm"
)

// TokenContract gives access to the tokens and approvals of a single
// deployed contract.
type TokenContract struct {
	contract  Contract
	tokens    orm.ModelBucket
	approvals orm.ModelBucket
}

// NewTokenContract returns a view over the tokens of given contract.
func NewTokenContract(c Contract) *TokenContract {
	return &TokenContract{
		contract:  c,
		tokens:    NewTokenBucket(),
		approvals: NewApprovalBucket(),
	}
}

// Address returns the address the contract is deployed at.
func (tc *TokenContract) Address() weave.Address {
	return tc.contract.Address
}

// Contract returns the stored contract record.
func (tc *TokenContract) Contract() Contract {
	return tc.contract
}

// Minter returns the only address allowed to mint tokens.
func (tc *TokenContract) Minter() weave.Address {
	return tc.contract.Minter
}

// Token loads a token of this contract. ErrNotFound is returned if the token
// was never minted.
func (tc *TokenContract) Token(db weave.ReadOnlyKVStore, tokenID uint64) (*Token, error) {
	var t Token
	if err := tc.tokens.One(db, TokenKey(tc.contract.Address, tokenID), &t); err != nil {
		return nil, errors.Wrapf(err, "token %d", tokenID)
	}
	return &t, nil
}

// OwnerOf returns the current owner of a token.
func (tc *TokenContract) OwnerOf(db weave.ReadOnlyKVStore, tokenID uint64) (weave.Address, error) {
	t, err := tc.Token(db, tokenID)
	if err != nil {
		return nil, err
	}
	return t.Owner, nil
}

// IsApprovedForAll returns true if the operator may move every token of the
// owner.
func (tc *TokenContract) IsApprovedForAll(db weave.ReadOnlyKVStore, owner, operator weave.Address) (bool, error) {
	var a OperatorApproval
	err := tc.approvals.One(db, ApprovalKey(tc.contract.Address, owner, operator), &a)
	switch {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// SetApprovalForAll grants or revokes the operator approval of the owner.
// Revoking an approval that does not exist is not an error.
func (tc *TokenContract) SetApprovalForAll(db weave.KVStore, owner, operator weave.Address, approved bool) error {
	key := ApprovalKey(tc.contract.Address, owner, operator)
	if !approved {
		err := tc.approvals.Delete(db, key)
		if err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	approval := &OperatorApproval{
		Metadata: &weave.Metadata{Schema: 1},
		Contract: tc.contract.Address,
		Owner:    owner,
		Operator: operator,
	}
	_, err := tc.approvals.Put(db, key, approval)
	return err
}

// Mint issues a new token owned by given address. Token ids are unique
// within a contract.
func (tc *TokenContract) Mint(db weave.KVStore, tokenID uint64, owner weave.Address) error {
	key := TokenKey(tc.contract.Address, tokenID)
	switch err := tc.tokens.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %d", tokenID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	token := &Token{
		Metadata: &weave.Metadata{Schema: 1},
		Contract: tc.contract.Address,
		TokenID:  tokenID,
		Owner:    owner,
	}
	_, err := tc.tokens.Put(db, key, token)
	return err
}

// TransferFrom moves a token from its current owner to a new one. The
// operator must be the owner or hold an approval of the owner.
func (tc *TokenContract) TransferFrom(db weave.KVStore, operator, from, to weave.Address, tokenID uint64) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	token, err := tc.Token(db, tokenID)
	if err != nil {
		return err
	}
	if !token.Owner.Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "token %d is not owned by %s", tokenID, from)
	}
	if !operator.Equals(from) {
		ok, err := tc.IsApprovedForAll(db, from, operator)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "%s is not an approved operator", operator)
		}
	}
	token.Owner = to
	_, err = tc.tokens.Put(db, TokenKey(tc.contract.Address, tokenID), token)
	return err
}

// Directory resolves contract addresses to deployed token contracts.
type Directory struct {
	contracts orm.ModelBucket
}

// NewDirectory returns a directory of all contracts created by this
// extension.
func NewDirectory() Directory {
	return Directory{contracts: NewContractBucket()}
}

// Lookup returns the contract deployed at given address. ErrNotFound is
// returned if no contract exists.
func (d Directory) Lookup(db weave.ReadOnlyKVStore, addr weave.Address) (interface{}, error) {
	return d.Contract(db, addr)
}

// Contract is a typed version of Lookup.
func (d Directory) Contract(db weave.ReadOnlyKVStore, addr weave.Address) (*TokenContract, error) {
	var c Contract
	if err := d.contracts.One(db, addr, &c); err != nil {
		return nil, errors.Wrapf(err, "contract %s", addr)
	}
	return NewTokenContract(c), nil
}

// CreateContract deploys a new contract. The address is derived from the
// contract sequence.
func CreateContract(db weave.KVStore, minter weave.Address, name, symbol string) (*Contract, error) {
	seq, err := contractSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "contract sequence")
	}
	c := &Contract{
		Metadata: &weave.Metadata{Schema: 1},
		Address:  ContractCondition(seq).Address(),
		Minter:   minter,
		Name:     name,
		Symbol:   symbol,
	}
	if _, err := NewContractBucket().Put(db, c.Address, c); err != nil {
		return nil, errors.Wrap(err, "cannot store contract")
	}
	return c, nil
}
