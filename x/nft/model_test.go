package nft_test

import (
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/weavetest"
	"github.com/nftrade/weave/weavetest/assert"
	"github.com/nftrade/weave/x/nft"
)

func TestContractValidate(t *testing.T) {
	minter := weavetest.NewCondition().Address()
	addr := nft.ContractCondition([]byte{0, 0, 0, 0, 0, 0, 0, 1}).Address()

	cases := map[string]struct {
		Contract nft.Contract
		WantErrs map[string]*errors.Error
	}{
		"valid contract": {
			Contract: nft.Contract{
				Metadata: &weave.Metadata{Schema: 1},
				Address:  addr,
				Minter:   minter,
				Name:     "Kitties",
				Symbol:   "KIT",
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Address":  nil,
				"Minter":   nil,
				"Name":     nil,
				"Symbol":   nil,
			},
		},
		"missing everything": {
			Contract: nft.Contract{},
			WantErrs: map[string]*errors.Error{
				"Metadata": errors.ErrMetadata,
				"Address":  errors.ErrInput,
				"Minter":   errors.ErrInput,
				"Name":     errors.ErrEmpty,
				"Symbol":   errors.ErrEmpty,
			},
		},
		"symbol too long": {
			Contract: nft.Contract{
				Metadata: &weave.Metadata{Schema: 1},
				Address:  addr,
				Minter:   minter,
				Name:     "Kitties",
				Symbol:   "KITTIESKITTIESKITTIES",
			},
			WantErrs: map[string]*errors.Error{
				"Symbol": errors.ErrInput,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Contract.Validate()
			for field, wantErr := range tc.WantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestApprovalValidate(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	contract := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Approval nft.OperatorApproval
		WantErrs map[string]*errors.Error
	}{
		"valid approval": {
			Approval: nft.OperatorApproval{
				Metadata: &weave.Metadata{Schema: 1},
				Contract: contract,
				Owner:    owner,
				Operator: weavetest.NewCondition().Address(),
			},
			WantErrs: map[string]*errors.Error{
				"Operator": nil,
				"Owner":    nil,
			},
		},
		"owner approving itself": {
			Approval: nft.OperatorApproval{
				Metadata: &weave.Metadata{Schema: 1},
				Contract: contract,
				Owner:    owner,
				Operator: owner,
			},
			WantErrs: map[string]*errors.Error{
				"Operator": errors.ErrInput,
				"Owner":    nil,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Approval.Validate()
			for field, wantErr := range tc.WantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestTokenKeyOrder(t *testing.T) {
	contract := weavetest.NewCondition().Address()
	a := nft.TokenKey(contract, 1)
	b := nft.TokenKey(contract, 256)
	if string(a) >= string(b) {
		t.Fatalf("token keys must preserve the numeric order: %X >= %X", a, b)
	}
}
