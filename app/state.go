package app

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// state keeps the committed store together with the cache collecting the
// writes of the transaction being delivered.
type state struct {
	committed weave.CommitKVStore
	pending   weave.KVCacheWrap
}

func loadState(store weave.CommitKVStore) (*state, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &state{committed: store, pending: store.CacheWrap()}, nil
}

func (s *state) latest() (weave.CommitID, error) {
	return s.committed.LatestVersion()
}

// pendingStore is where deliveries write.
func (s *state) pendingStore() weave.CacheableKVStore {
	return s.pending
}

// commit persists the pending writes as a new version.
func (s *state) commit() (weave.CommitID, error) {
	if err := s.pending.Write(); err != nil {
		return weave.CommitID{}, err
	}
	id, err := s.committed.Commit()
	if err != nil {
		return id, err
	}
	s.pending = s.committed.CacheWrap()
	return id, nil
}

// rollback drops the pending writes.
func (s *state) rollback() {
	s.pending.Discard()
	s.pending = s.committed.CacheWrap()
}

// snapshot returns a view of the committed state. Writes to it are thrown
// away.
func (s *state) snapshot() weave.KVCacheWrap {
	return s.committed.CacheWrap()
}
