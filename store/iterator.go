package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/nftrade/weave/errors"
)

// cachedRange returns the cached items within [start, end) in iteration
// order. A nil bound leaves that side of the range open.
func cachedRange(tree *btree.BTree, start, end []byte, reverse bool) []cacheItem {
	var items []cacheItem
	visit := func(i btree.Item) bool {
		items = append(items, i.(cacheItem))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(visit)
	case start == nil:
		tree.AscendLessThan(cacheItem{key: end}, visit)
	case end == nil:
		tree.AscendGreaterOrEqual(cacheItem{key: start}, visit)
	default:
		tree.AscendRange(cacheItem{key: start}, cacheItem{key: end}, visit)
	}
	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// head tells which side holds the next key.
type head int

const (
	headNone head = iota
	headCache
	headParent
	// both sides hold the same key, the cache wins
	headBoth
)

// mergeIterator walks the cached writes and the parent iterator side by
// side. Cached values shadow the parent and cached deletes hide it.
type mergeIterator struct {
	cache   []cacheItem
	pos     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []cacheItem, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{cache: cache, parent: parent, reverse: reverse}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *mergeIterator) Valid() bool {
	return it.head() != headNone
}

func (it *mergeIterator) Next() error {
	if err := it.advance(it.head()); err != nil {
		return err
	}
	return it.skipDeleted()
}

func (it *mergeIterator) advance(h head) error {
	switch h {
	case headCache:
		it.pos++
	case headBoth:
		it.pos++
		return it.parent.Next()
	case headParent:
		return it.parent.Next()
	default:
		return errors.Wrap(errors.ErrHuman, "merge iterator exhausted")
	}
	return nil
}

func (it *mergeIterator) Key() []byte {
	switch it.head() {
	case headCache, headBoth:
		return it.cache[it.pos].key
	case headParent:
		return it.parent.Key()
	}
	panic("merge iterator exhausted")
}

func (it *mergeIterator) Value() []byte {
	switch it.head() {
	case headCache, headBoth:
		return it.cache[it.pos].value
	case headParent:
		return it.parent.Value()
	}
	panic("merge iterator exhausted")
}

func (it *mergeIterator) Close() {
	if it.parent != nil {
		it.parent.Close()
	}
	it.cache = nil
}

// skipDeleted moves past every cached delete at the head, together with
// the parent entry it hides.
func (it *mergeIterator) skipDeleted() error {
	for {
		h := it.head()
		if h != headCache && h != headBoth {
			return nil
		}
		if !it.cache[it.pos].deleted {
			return nil
		}
		if err := it.advance(h); err != nil {
			return err
		}
	}
}

func (it *mergeIterator) head() head {
	cacheOK := it.pos < len(it.cache)
	parentOK := it.parent != nil && it.parent.Valid()
	switch {
	case !cacheOK && !parentOK:
		return headNone
	case !parentOK:
		return headCache
	case !cacheOK:
		return headParent
	}

	cmp := bytes.Compare(it.cache[it.pos].key, it.parent.Key())
	if it.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return headCache
	case cmp > 0:
		return headParent
	default:
		return headBoth
	}
}
