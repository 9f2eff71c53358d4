package weave

import (
	"encoding/json"

	"github.com/tendermint/tendermint/libs/common"
)

// Handler processes the messages of one kind, such as creating a swap or
// transferring a token. Check validates a transaction without side effects
// that matter, Deliver executes it.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler, for example to recover panics or to
// log every transaction.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options is the genesis app state, one raw JSON document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

type CheckResult struct {
	// Data is a machine readable result, like the id of a created entity.
	Data []byte
	Log  string
}

type DeliverResult struct {
	// Data is a machine readable result, like the id of a created entity.
	Data []byte
	Log  string
	// Tags describe the transaction to event subscribers.
	Tags []common.KVPair
}
