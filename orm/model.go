package orm

import (
	"github.com/nftrade/weave"
)

// Model is an entity stored by a ModelBucket. It matches CloneableData.
type Model interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}

// ModelSlicePtr is a pointer to a slice of models, such as *[]Swap or
// *[]*Swap. The element type is checked at runtime.
type ModelSlicePtr interface{}
