package orm

import (
	"reflect"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Object is a keyed entity as it is kept in a Bucket.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Cloneable
	// Validate must pass before the object is written.
	Validate() error
	Value() weave.Persistent
}

// Cloneable returns a fresh object of the same type that data can be
// loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a value that a SimpleObj can carry.
type CloneableData interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}

// SimpleObj pairs a primary key with a model.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() weave.Persistent {
	return o.value
}

// Validate requires both the key and the value before delegating to the
// value itself.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object holding a zero value of the same model type. The
// key is copied when set.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	clone := NewSimpleObj(nil, zero)
	if len(o.key) != 0 {
		clone.key = append([]byte(nil), o.key...)
	}
	return clone
}
