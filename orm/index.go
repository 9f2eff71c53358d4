package orm

import (
	"bytes"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Index is a secondary index of a bucket.
type Index interface {
	Name() string

	// Update keeps the index in sync with a change of a bucket entity.
	// A nil prev is an insert and a nil save is a delete. Both objects must
	// share the same primary key when neither is nil.
	Update(db weave.KVStore, prev Object, save Object) error

	// Keys returns the primary keys indexed under value.
	Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error)

	// Query resolves an index query into the indexed models.
	Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error)
}

// Indexer calculates the secondary index key for a given object. A nil key
// leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates all secondary index keys for a given object.
type MultiKeyIndexer func(Object) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		if err != nil || key == nil {
			return nil, err
		}
		return [][]byte{key}, nil
	}
}

const indexPrefix = "_i."

// refIndex keeps, for every index value, the set of primary keys indexed
// under it. A unique index stores the single primary key as is, any other
// index stores a serialized MultiRef.
type refIndex struct {
	name   string
	prefix []byte
	unique bool
	keysOf MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = (*refIndex)(nil)

// NewMultiKeyIndex returns an index storing references under every key
// returned by indexer. refKey turns a reference into the database key of the
// indexed entity.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return &refIndex{
		name:   name,
		prefix: []byte(indexPrefix + name + ":"),
		unique: unique,
		keysOf: indexer,
		refKey: refKey,
	}
}

func (ix *refIndex) Name() string {
	return ix.name
}

func (ix *refIndex) dbKey(value []byte) []byte {
	key := make([]byte, 0, len(ix.prefix)+len(value))
	return append(append(key, ix.prefix...), value...)
}

// decode turns a stored index entry into the set of references.
func (ix *refIndex) decode(raw []byte) (*MultiRef, error) {
	if raw == nil {
		return new(MultiRef), nil
	}
	if ix.unique {
		return &MultiRef{Refs: [][]byte{raw}}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &refs, nil
}

func (ix *refIndex) load(db weave.ReadOnlyKVStore, value []byte) (*MultiRef, error) {
	raw, err := db.Get(ix.dbKey(value))
	if err != nil {
		return nil, err
	}
	return ix.decode(raw)
}

// store writes the reference set back, removing the entry once it is empty.
func (ix *refIndex) store(db weave.KVStore, value []byte, refs *MultiRef) error {
	key := ix.dbKey(value)
	switch {
	case refs.Size() == 0:
		return db.Delete(key)
	case ix.unique:
		return db.Set(key, refs.Refs[0])
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(key, raw)
}

func (ix *refIndex) Update(db weave.KVStore, prev Object, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "index update without an object")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "primary key cannot change")
	}

	var oldValues, newValues [][]byte
	if prev != nil {
		vals, err := ix.keysOf(prev)
		if err != nil {
			return err
		}
		oldValues = vals
	}
	if save != nil {
		vals, err := ix.keysOf(save)
		if err != nil {
			return err
		}
		newValues = vals
	}
	added := without(newValues, oldValues)
	removed := without(oldValues, newValues)

	// Unique violations must be found before anything is written.
	if ix.unique {
		for _, v := range added {
			if len(v) == 0 {
				continue
			}
			ok, err := db.Has(ix.dbKey(v))
			if err != nil {
				return err
			}
			if ok {
				return errors.Wrap(errors.ErrDuplicate, ix.name)
			}
		}
	}

	var pk []byte
	if prev != nil {
		pk = prev.Key()
	} else {
		pk = save.Key()
	}
	for _, v := range removed {
		if err := ix.unlink(db, v, pk); err != nil {
			return err
		}
	}
	for _, v := range added {
		if err := ix.link(db, v, pk); err != nil {
			return err
		}
	}
	return nil
}

func (ix *refIndex) link(db weave.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	refs, err := ix.load(db, value)
	if err != nil {
		return err
	}
	if ix.unique && refs.Size() > 0 {
		return errors.Wrap(errors.ErrDuplicate, ix.name)
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return ix.store(db, value, refs)
}

func (ix *refIndex) unlink(db weave.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	refs, err := ix.load(db, value)
	if err != nil {
		return err
	}
	if refs.Size() == 0 {
		return errors.Wrapf(errors.ErrNotFound, "no %s index entry", ix.name)
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	return ix.store(db, value, refs)
}

func (ix *refIndex) Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := ix.load(db, value)
	if err != nil {
		return nil, err
	}
	if refs.Size() == 0 {
		return nil, nil
	}
	return refs.Refs, nil
}

// keysWithPrefix collects the references of every index value starting
// with prefix.
func (ix *refIndex) keysWithPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	entries, err := queryPrefix(db, ix.dbKey(prefix))
	if err != nil {
		return nil, err
	}
	var all [][]byte
	for _, e := range entries {
		refs, err := ix.decode(e.Value)
		if err != nil {
			return nil, err
		}
		all = append(all, refs.Refs...)
	}
	return all, nil
}

func (ix *refIndex) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	var (
		refs [][]byte
		err  error
	)
	switch mod {
	case weave.KeyQueryMod:
		refs, err = ix.Keys(db, data)
	case weave.PrefixQueryMod:
		refs, err = ix.keysWithPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	if err != nil || len(refs) == 0 {
		return nil, err
	}

	res := make([]weave.Model, 0, len(refs))
	for _, ref := range refs {
		key := ix.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, weave.Model{Key: key, Value: value})
	}
	return res, nil
}

// without returns the elements of all that are missing from exclude.
func without(all, exclude [][]byte) [][]byte {
	var res [][]byte
	for _, a := range all {
		found := false
		for _, e := range exclude {
			if bytes.Equal(a, e) {
				found = true
				break
			}
		}
		if !found {
			res = append(res, a)
		}
	}
	return res
}
