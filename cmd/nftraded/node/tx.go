package node

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Tx carries a single message to the ledger. Signatures are verified by the
// transport, so the transaction holds no authentication data.
type Tx struct {
	Msg weave.Msg
}

var _ weave.Tx = (*Tx)(nil)

// NewTx wraps the message.
func NewTx(msg weave.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the wrapped message.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return tx.Msg, nil
}
