package store

import (
	"testing"

	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/weavetest/assert"
)

func TestSliceIterator(t *testing.T) {
	pairs := sortedPairs(randomPairs(6, 8, 16))

	it := NewSliceIterator(pairs)
	var seen []Model
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		seen = append(seen, Model{Key: it.Key(), Value: it.Value()})
	}
	assert.Equal(t, pairs, seen)
	if err := it.Next(); !errors.ErrHuman.Is(err) {
		t.Fatalf("want exhausted iterator error, got %v", err)
	}

	it = NewSliceIterator(pairs)
	it.Close()
	if it.Valid() {
		t.Fatal("closed iterator is still valid")
	}
}

func TestNonAtomicBatch(t *testing.T) {
	kv := MemStore()
	assert.Nil(t, kv.Set([]byte("token:2"), []byte("bob")))

	b := NewNonAtomicBatch(kv)
	assert.Nil(t, b.Set([]byte("token:1"), []byte("alice")))
	assert.Nil(t, b.Delete([]byte("token:2")))
	assert.Equal(t, 2, len(b.ShowOps()))

	// Nothing is applied before the batch is written.
	expectValue(t, kv, []byte("token:1"), nil)
	expectValue(t, kv, []byte("token:2"), []byte("bob"))

	assert.Nil(t, b.Write())
	expectValue(t, kv, []byte("token:1"), []byte("alice"))
	expectValue(t, kv, []byte("token:2"), nil)
	assert.Equal(t, 0, len(b.ShowOps()))
}

func TestEmptyKVStore(t *testing.T) {
	var kv EmptyKVStore
	assert.Nil(t, kv.Set([]byte("k"), []byte("v")))
	expectValue(t, kv, []byte("k"), nil)

	it, err := kv.Iterator(nil, nil)
	assert.Nil(t, err)
	if it.Valid() {
		t.Fatal("empty store iterator must not be valid")
	}
}
