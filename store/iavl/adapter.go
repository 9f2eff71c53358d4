// Package iavl persists the ledger state in a versioned iavl merkle tree.
// Every commit saves a new version whose root hash is the app hash.
package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/store"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore reads the last saved version of the tree. Writes go to the
// working tree, see Adapter, and become visible on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens the leveldb database <dir>/<name>.db.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, errors.Wrapf(errors.ErrDatabase, "open %s: %s", name, err)
	}
	return newCommitStore(db), nil
}

// MockCommitStore keeps the tree in memory.
func MockCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
		db:   db,
	}
}

func (s CommitStore) Close() error {
	s.db.Close()
	return nil
}

// Get reads the last saved version. A missing key is nil.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves the working tree as a new version.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the newest complete version. After a crash in
// the middle of a commit that is the version before it.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// Adapter exposes the working tree. Its writes are lost unless committed.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return working{s.tree}
}

func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// working is the mutable tree as a KVStore. The tree panics on nil keys.
type working struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = working{}

func (w working) Get(key []byte) ([]byte, error) {
	_, val := w.tree.Get(key)
	return val, nil
}

func (w working) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w working) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w working) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

func (w working) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(w)
}

func (w working) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(w, w.NewBatch(), nil)
}

func (w working) Iterator(start, end []byte) (store.Iterator, error) {
	return rangeIterator(w.tree.ImmutableTree, start, end, true), nil
}

func (w working) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return rangeIterator(w.tree.ImmutableTree, start, end, false), nil
}
