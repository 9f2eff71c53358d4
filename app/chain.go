package app

import (
	"reflect"

	"github.com/nftrade/weave"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator runs first:
//
//   app.ChainDecorators(
//       utils.NewLogging(),
//       utils.NewRecovery(),
//       utils.NewSavepoint().OnCheck(),
//   ).WithHandler(router)
type Decorators []weave.Decorator

// ChainDecorators starts a stack. Nil decorators are skipped so that
// optional ones can be passed unconditionally.
func ChainDecorators(decs ...weave.Decorator) Decorators {
	return Decorators(nil).Chain(decs...)
}

// Chain returns a new stack with decs added at the bottom.
func (d Decorators) Chain(decs ...weave.Decorator) Decorators {
	stack := append(Decorators(nil), d...)
	for _, dec := range decs {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		stack = append(stack, dec)
	}
	return stack
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer runs one decorator around the rest of the stack.
type layer struct {
	dec  weave.Decorator
	next weave.Handler
}

func (l layer) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
