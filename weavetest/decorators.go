package weavetest

import "github.com/nftrade/weave"

// Decorator counts the calls passing through it and can fail them. A set
// CheckErr or DeliverErr is returned without calling the next handler.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks     int
	deliveries int
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.deliveries++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.deliveries }

// Decorate wraps h so that every call goes through d first.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return decorated{next: h, with: d}
}

type decorated struct {
	next weave.Handler
	with weave.Decorator
}

func (d decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return d.with.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return d.with.Deliver(ctx, db, tx, d.next)
}
