package weave

// ReadOnlyKVStore reads from an ordered key value store. Nil keys are not
// allowed.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not set.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound
	// leaves that side open. The range must not be written to while the
	// iterator is open.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes to a store or a batch. Implementations must not modify
// the given slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handlers work on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes that are applied together by Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Close()
//   for ; it.Valid(); err = it.Next() {
//       ...
//   }
//
// Key, Value and Next must only be called on a valid iterator. Once
// invalid, an iterator stays invalid.
type Iterator interface {
	Valid() bool
	Next() error
	// Key and Value return slices that must not be modified.
	Key() (key []byte)
	Value() (value []byte)
	Close()
}

// CacheableKVStore can stack a scratch pad on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of a parent store. Reads see the
// buffered writes. Write applies them to the parent, Discard drops them.
// Every transaction runs in its own cache wrap so that a failing one
// leaves no trace.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore persists versioned state. Every Commit creates a new
// version identified by its height and merkle root.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion restores the last complete commit, even after a
	// crash in the middle of a commit.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version.
type CommitID struct {
	Version int64
	Hash    []byte
}
