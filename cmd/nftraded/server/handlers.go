package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/cmd/nftraded/metrics"
	"github.com/nftrade/weave/cmd/nftraded/node"
	"github.com/nftrade/weave/x"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
)

// Ledger is the part of the node used to serve requests.
type Ledger interface {
	ChainID() string
	Height() (int64, error)
	Check(ctx context.Context, tx weave.Tx) (*weave.CheckResult, error)
	Deliver(ctx context.Context, tx weave.Tx) (*weave.DeliverResult, error)
	View(fn func(db weave.ReadOnlyKVStore) error) error
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Ledger  Ledger
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
	// Debug exposes the details of unregistered errors.
	Debug bool
}

// NewHandlers creates a new handlers instance
func NewHandlers(l Ledger, logger logrus.FieldLogger, m *metrics.Metrics, debug bool) *Handlers {
	return &Handlers{Ledger: l, Logger: logger, Metrics: m, Debug: debug}
}

// deliver checks the message against the committed state and, if it
// passes, delivers it.
func (h *Handlers) deliver(c echo.Context, msg weave.Msg) (*weave.DeliverResult, error) {
	ctx := c.Request().Context()
	tx := node.NewTx(msg)
	start := time.Now()

	_, err := h.Ledger.Check(ctx, tx)
	var res *weave.DeliverResult
	if err == nil {
		res, err = h.Ledger.Deliver(ctx, tx)
	}
	if h.Metrics != nil {
		h.Metrics.ObserveTx(msg.Path(), start, err)
		if err == nil {
			if height, herr := h.Ledger.Height(); herr == nil {
				h.Metrics.Height.Set(float64(height))
			}
		}
	}
	return res, err
}

func signer(c echo.Context) weave.Address {
	cond := x.MainSigner(c.Request().Context(), x.CtxAuth{})
	if cond == nil {
		return nil
	}
	return cond.Address()
}

func paramUint(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// Health returns the health status of the ledger
func (h *Handlers) Health(c echo.Context) error {
	height, err := h.Ledger.Height()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, HealthResponse{
		OK:      h.Ledger.ChainID() != "",
		ChainID: h.Ledger.ChainID(),
		Height:  height,
	})
}

// Operator returns the address that owners must approve before a swap can
// move their tokens.
func (h *Handlers) Operator(c echo.Context) error {
	return c.JSON(http.StatusOK, OperatorResponse{
		Address:   swap.OperatorAddress(),
		Condition: swap.OperatorCondition().String(),
	})
}

func (h *Handlers) CreateContract(c echo.Context) error {
	var req CreateContractRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body", err.Error())
	}
	res, err := h.deliver(c, &nft.CreateContractMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Minter:   req.Minter,
		Name:     req.Name,
		Symbol:   req.Symbol,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, AddressResponse{Address: res.Data})
}

func (h *Handlers) GetContract(c echo.Context) error {
	addr, err := weave.ParseAddress(c.Param("address"))
	if err != nil {
		return h.badRequest(c, "invalid contract address", err.Error())
	}
	var view ContractView
	err = h.Ledger.View(func(db weave.ReadOnlyKVStore) error {
		tc, err := nft.NewDirectory().Contract(db, addr)
		if err != nil {
			return err
		}
		view = contractView(tc.Contract())
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Mint issues a token. The owner defaults to the signer.
func (h *Handlers) Mint(c echo.Context) error {
	addr, err := weave.ParseAddress(c.Param("address"))
	if err != nil {
		return h.badRequest(c, "invalid contract address", err.Error())
	}
	var req MintRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body", err.Error())
	}
	if len(req.Owner) == 0 {
		req.Owner = signer(c)
	}
	_, err = h.deliver(c, &nft.MintMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Contract: addr,
		TokenID:  req.TokenID,
		Owner:    req.Owner,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, TokenView{Contract: addr, TokenID: req.TokenID, Owner: req.Owner})
}

func (h *Handlers) GetToken(c echo.Context) error {
	addr, err := weave.ParseAddress(c.Param("address"))
	if err != nil {
		return h.badRequest(c, "invalid contract address", err.Error())
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return h.badRequest(c, "invalid token id", err.Error())
	}
	var view TokenView
	err = h.Ledger.View(func(db weave.ReadOnlyKVStore) error {
		tc, err := nft.NewDirectory().Contract(db, addr)
		if err != nil {
			return err
		}
		t, err := tc.Token(db, id)
		if err != nil {
			return err
		}
		view = tokenView(t)
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handlers) SetApprovalForAll(c echo.Context) error {
	addr, err := weave.ParseAddress(c.Param("address"))
	if err != nil {
		return h.badRequest(c, "invalid contract address", err.Error())
	}
	var req ApprovalRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body", err.Error())
	}
	_, err = h.deliver(c, &nft.SetApprovalForAllMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Contract: addr,
		Operator: req.Operator,
		Approved: req.Approved,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ApprovalResponse{
		Owner:    signer(c),
		Operator: req.Operator,
		Approved: req.Approved,
	})
}

// Transfer moves a token. From defaults to the signer.
func (h *Handlers) Transfer(c echo.Context) error {
	addr, err := weave.ParseAddress(c.Param("address"))
	if err != nil {
		return h.badRequest(c, "invalid contract address", err.Error())
	}
	var req TransferRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body", err.Error())
	}
	if len(req.From) == 0 {
		req.From = signer(c)
	}
	_, err = h.deliver(c, &nft.TransferMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Contract: addr,
		From:     req.From,
		To:       req.To,
		TokenID:  req.TokenID,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, TokenView{Contract: addr, TokenID: req.TokenID, Owner: req.To})
}

func (h *Handlers) CreateSwap(c echo.Context) error {
	var req CreateSwapRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body", err.Error())
	}
	res, err := h.deliver(c, req.msg())
	if err != nil {
		return h.fail(c, err)
	}
	id, err := swap.ParseSwapKey(res.Data)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreateSwapResponse{ID: id})
}

// ListSwaps returns the swaps of either a creator or a recipient.
func (h *Handlers) ListSwaps(c echo.Context) error {
	creator, recipient := c.QueryParam("creator"), c.QueryParam("recipient")
	if (creator == "") == (recipient == "") {
		return h.badRequest(c, "exactly one of creator or recipient is required", nil)
	}
	raw, byCreator := creator, true
	if recipient != "" {
		raw, byCreator = recipient, false
	}
	addr, err := weave.ParseAddress(raw)
	if err != nil {
		return h.badRequest(c, "invalid address", err.Error())
	}

	var swaps []*swap.Swap
	err = h.Ledger.View(func(db weave.ReadOnlyKVStore) error {
		var err error
		if byCreator {
			swaps, err = swap.NewRegistry().ByCreator(db, addr)
		} else {
			swaps, err = swap.NewRegistry().ByRecipient(db, addr)
		}
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	list := SwapList{Items: make([]SwapView, 0, len(swaps))}
	for _, s := range swaps {
		list.Items = append(list.Items, swapView(s))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetSwap(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return h.badRequest(c, "invalid swap id", err.Error())
	}
	var s *swap.Swap
	err = h.Ledger.View(func(db weave.ReadOnlyKVStore) error {
		var err error
		s, err = swap.NewRegistry().Get(db, id)
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, swapView(s))
}

func (h *Handlers) ExecuteSwap(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return h.badRequest(c, "invalid swap id", err.Error())
	}
	msg := &swap.ExecuteSwapMsg{Metadata: &weave.Metadata{Schema: 1}, SwapID: id}
	if _, err := h.deliver(c, msg); err != nil {
		return h.fail(c, err)
	}
	return h.GetSwap(c)
}

func (h *Handlers) CancelSwap(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return h.badRequest(c, "invalid swap id", err.Error())
	}
	msg := &swap.CancelSwapMsg{Metadata: &weave.Metadata{Schema: 1}, SwapID: id}
	if _, err := h.deliver(c, msg); err != nil {
		return h.fail(c, err)
	}
	return h.GetSwap(c)
}

// Participant returns the creator (index 0) or recipient (index 1) of a
// swap.
func (h *Handlers) Participant(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return h.badRequest(c, "invalid swap id", err.Error())
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return h.badRequest(c, "invalid participant index", err.Error())
	}
	var addr weave.Address
	err = h.Ledger.View(func(db weave.ReadOnlyKVStore) error {
		var err error
		addr, err = swap.NewRegistry().Participants(db, id, index)
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, AddressResponse{Address: addr})
}
