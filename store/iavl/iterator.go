package iavl

import (
	"github.com/tendermint/iavl"

	"github.com/nftrade/weave/store"
)

// rangeIterator copies all pairs from the given range of the tree into a
// slice iterator. The result is stable and safe to use while the tree is
// modified.
func rangeIterator(tree *iavl.ImmutableTree, start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{
			Key:   append([]byte(nil), key...),
			Value: append([]byte(nil), value...),
		})
		return false
	})
	return store.NewSliceIterator(res)
}
