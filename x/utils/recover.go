package utils

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Recovery turns a panicking handler into an ErrPanic error. The panic is
// logged with the message path.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (_ *weave.CheckResult, err error) {
	defer r.report(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (_ *weave.DeliverResult, err error) {
	defer r.report(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

func (Recovery) report(ctx weave.Context, tx weave.Tx, err *error) {
	if errors.ErrPanic.Is(*err) {
		weave.GetLogger(ctx).Error("handler panic", "path", weave.GetPath(tx), "err", *err)
	}
}
