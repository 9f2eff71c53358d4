package server

import (
	"time"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
)

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error    string      `json:"error"`
	Code     int         `json:"code"`
	ABCICode uint32      `json:"abci_code,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK      bool   `json:"ok"`
	ChainID string `json:"chain_id"`
	Height  int64  `json:"height"`
}

type OperatorResponse struct {
	Address   weave.Address `json:"address"`
	Condition string        `json:"condition"`
}

type AddressResponse struct {
	Address weave.Address `json:"address"`
}

type CreateContractRequest struct {
	// Minter defaults to the signer.
	Minter weave.Address `json:"minter"`
	Name   string        `json:"name"`
	Symbol string        `json:"symbol"`
}

type ContractView struct {
	Address weave.Address `json:"address"`
	Minter  weave.Address `json:"minter"`
	Name    string        `json:"name"`
	Symbol  string        `json:"symbol"`
}

func contractView(c nft.Contract) ContractView {
	return ContractView{Address: c.Address, Minter: c.Minter, Name: c.Name, Symbol: c.Symbol}
}

type MintRequest struct {
	TokenID uint64        `json:"token_id"`
	Owner   weave.Address `json:"owner"`
}

type TokenView struct {
	Contract weave.Address `json:"contract"`
	TokenID  uint64        `json:"token_id"`
	Owner    weave.Address `json:"owner"`
}

func tokenView(t *nft.Token) TokenView {
	return TokenView{Contract: t.Contract, TokenID: t.TokenID, Owner: t.Owner}
}

type ApprovalRequest struct {
	Operator weave.Address `json:"operator"`
	Approved bool          `json:"approved"`
}

type ApprovalResponse struct {
	Owner    weave.Address `json:"owner"`
	Operator weave.Address `json:"operator"`
	Approved bool          `json:"approved"`
}

type TransferRequest struct {
	From    weave.Address `json:"from"`
	To      weave.Address `json:"to"`
	TokenID uint64        `json:"token_id"`
}

type AssetView struct {
	Contract weave.Address `json:"contract"`
	TokenID  uint64        `json:"token_id"`
}

type CreateSwapRequest struct {
	Recipient  weave.Address `json:"recipient"`
	SplitIndex uint32        `json:"split_index"`
	Assets     []AssetView   `json:"assets"`
	AuxParam   uint64        `json:"aux_param"`
}

func (r CreateSwapRequest) msg() *swap.CreateSwapMsg {
	msg := &swap.CreateSwapMsg{
		Metadata:       &weave.Metadata{Schema: 1},
		Recipient:      r.Recipient,
		SplitIndex:     r.SplitIndex,
		AssetContracts: make([][]byte, len(r.Assets)),
		TokenIDs:       make([]uint64, len(r.Assets)),
		AuxParam:       r.AuxParam,
	}
	for i, a := range r.Assets {
		msg.AssetContracts[i] = a.Contract
		msg.TokenIDs[i] = a.TokenID
	}
	return msg
}

type CreateSwapResponse struct {
	ID uint64 `json:"id"`
}

type SwapView struct {
	ID         uint64        `json:"id"`
	Creator    weave.Address `json:"creator"`
	Recipient  weave.Address `json:"recipient"`
	Assets     []AssetView   `json:"assets"`
	SplitIndex uint32        `json:"split_index"`
	Status     string        `json:"status"`
	AuxParam   uint64        `json:"aux_param"`
	CreatedAt  time.Time     `json:"created_at"`
}

func swapView(s *swap.Swap) SwapView {
	assets := make([]AssetView, len(s.Assets))
	for i, a := range s.Assets {
		assets[i] = AssetView{Contract: a.Contract, TokenID: a.TokenID}
	}
	return SwapView{
		ID:         s.ID,
		Creator:    s.Creator,
		Recipient:  s.Recipient,
		Assets:     assets,
		SplitIndex: s.SplitIndex,
		Status:     s.Status.String(),
		AuxParam:   s.AuxParam,
		CreatedAt:  s.CreatedAt.Time().UTC(),
	}
}

type SwapList struct {
	Items []SwapView `json:"items"`
}
