package weave

import (
	"reflect"

	"github.com/nftrade/weave/errors"
)

// Marshaller is anything with a binary form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be written to and read back from the store. Unmarshal
// almost always needs a pointer receiver, so code that only writes should
// ask for a Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg requests one state transition, for example creating a swap. It
// carries no authentication, signers come from the transaction.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It matches [0-9A-Za-z_/]+,
	// for example "swap/create".
	Path() string

	// Validate checks the message on its own, without reading state.
	Validate() error
}

// Tx is what a client submits: one message plus whatever the decorators
// need, such as signatures.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath is the path of the transaction message, "(missing)" if it has
// none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest and validates it. dest must
// point to the concrete message type:
//
//   var msg CreateSwapMsg
//   err := weave.LoadMsg(tx, &msg)
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	src, dst := reflect.ValueOf(msg), reflect.ValueOf(dest)
	if src.Kind() != reflect.Ptr || dst.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "message and destination must be pointers")
	}
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dest, msg)
	}
	dst.Elem().Set(src.Elem())

	return errors.Wrap(msg.Validate(), "invalid message")
}
