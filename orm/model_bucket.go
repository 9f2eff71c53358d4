package orm

import (
	"reflect"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One loads the model stored under key into dest. It fails with
	// ErrNotFound for a missing key and with ErrType when dest is not of
	// the bucket model type.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex appends every model referenced by the named index under key
	// to dest, a pointer to a slice of models or of model pointers. The
	// primary keys are returned in the same order.
	ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) (keys [][]byte, err error)

	// Put validates and stores m. An empty key is replaced with the next
	// value of the ID sequence. The used key is returned.
	Put(db weave.KVStore, key []byte, m Model) ([]byte, error)

	// Delete fails with ErrNotFound when nothing is stored under key.
	Delete(db weave.KVStore, key []byte) error

	// Has returns ErrNotFound when nothing is stored under key.
	Has(db weave.KVStore, key []byte) error

	Register(name string, r weave.QueryRouter)
}

// ModelBucketOption configures a ModelBucket on creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex adds a secondary index to the bucket.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// WithMultiKeyIndex adds a secondary index that may reference an entity
// under several values.
func WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithMultiKeyIndex(name, indexer, unique)
	}
}

// WithIDSequence replaces the sequence used to generate primary keys.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = s
	}
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	// model is the struct type, never a pointer.
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

// NewModelBucket returns a bucket storing models of the same type as m.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: structType(reflect.TypeOf(m)),
	}
	for _, opt := range opts {
		opt(mb)
	}
	return mb
}

func structType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

func (mb *modelBucket) Register(name string, r weave.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	src := reflect.ValueOf(obj.Value())
	if !src.Type().AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", obj.Value(), dest)
	}
	reflect.ValueOf(dest).Elem().Set(src.Elem())
	return nil
}

// sliceDest validates the ByIndex destination and tells whether it holds
// pointers.
func (mb *modelBucket) sliceDest(destination ModelSlicePtr) (reflect.Value, bool, error) {
	ptr := reflect.ValueOf(destination)
	if ptr.Kind() != reflect.Ptr {
		return reflect.Value{}, false, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}
	if ptr.IsNil() {
		return reflect.Value{}, false, errors.Wrap(errors.ErrImmutable, "got nil pointer")
	}
	dest := ptr.Elem()
	if dest.Kind() != reflect.Slice {
		return reflect.Value{}, false, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}
	elem := dest.Type().Elem()
	pointers := elem.Kind() == reflect.Ptr
	if structType(elem) != mb.model {
		return reflect.Value{}, false, errors.Wrapf(errors.ErrType, "this bucket operates on %s model and cannot return %s", mb.model, structType(elem))
	}
	return dest, pointers, nil
}

func (mb *modelBucket) ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil || len(objs) == 0 {
		return nil, err
	}
	dest, pointers, err := mb.sliceDest(destination)
	if err != nil {
		return nil, err
	}

	keys := make([][]byte, 0, len(objs))
	for _, obj := range objs {
		if obj == nil || obj.Value() == nil {
			continue
		}
		v := reflect.ValueOf(obj.Value())
		if !pointers {
			v = v.Elem()
		}
		dest.Set(reflect.Append(dest, v))
		keys = append(keys, obj.Key())
	}
	return keys, nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) ([]byte, error) {
	t := reflect.TypeOf(m)
	if t.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrType, "model destination must be a pointer")
	}
	if t.Elem() != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T type in this bucket", m)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		next, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
		key = next
	}
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Has(db weave.KVStore, key []byte) error {
	// The store API does not accept nil keys.
	if key == nil {
		return errors.ErrNotFound
	}
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}
