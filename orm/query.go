package orm

import (
	"github.com/nftrade/weave"
)

// queryPrefix loads every pair stored under a key starting with prefix, in
// key order.
func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var res []weave.Model
	for ; it.Valid(); err = it.Next() {
		if err != nil {
			return nil, err
		}
		res = append(res, weave.Model{Key: it.Key(), Value: it.Value()})
	}
	return res, err
}

// prefixRange returns the iterator bounds covering all keys starting with
// prefix. The end is nil when no key sorts after the prefix range.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
		if i == 0 {
			return prefix, nil
		}
	}
	return prefix, nil
}
