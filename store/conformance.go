package store

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/weavetest/assert"
)

// StoreFactory returns a fresh, empty store and a function releasing it.
type StoreFactory func() (base CacheableKVStore, cleanup func())

// RunConformance checks that a CacheableKVStore implementation and the cache
// wraps built on top of it behave as the ledger expects. Both the btree
// cache and the iavl adapter are tested with it.
func RunConformance(t *testing.T, factory StoreFactory) {
	t.Run("cache layering", func(t *testing.T) { checkLayering(t, factory) })
	t.Run("cache overrides", func(t *testing.T) { checkOverrides(t, factory) })
	t.Run("random iteration", func(t *testing.T) { checkRandomIteration(t, factory) })
	t.Run("iteration overrides", func(t *testing.T) { checkIterationOverrides(t, factory) })
}

// checkLayering writes through a chain of caches and verifies which layer
// observes which write.
func checkLayering(t *testing.T, factory StoreFactory) {
	base, cleanup := factory()
	defer cleanup()

	token, owner := []byte("token:1"), []byte("alice")
	expectValue(t, base, token, nil)
	assert.Nil(t, base.Set(token, owner))
	expectValue(t, base, token, owner)

	swap, status := []byte("swap:0"), []byte("pending")
	pending := base.CacheWrap()
	expectValue(t, pending, token, owner)
	assert.Nil(t, pending.Set(swap, status))
	expectValue(t, pending, swap, status)
	expectValue(t, base, swap, nil)

	assert.Nil(t, pending.Write())
	expectValue(t, base, swap, status)

	// A discarded cache leaves no trace.
	abandoned := base.CacheWrap()
	assert.Nil(t, abandoned.Set([]byte("swap:1"), []byte("pending")))
	assert.Nil(t, abandoned.Delete(token))
	abandoned.Discard()
	expectValue(t, base, []byte("swap:1"), nil)
	expectValue(t, base, token, owner)

	// Nested caches only reach the base once every layer was written.
	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Delete(token))
	assert.Nil(t, inner.Write())
	expectValue(t, outer, token, nil)
	expectValue(t, base, token, owner)
	assert.Nil(t, outer.Write())
	expectValue(t, base, token, nil)
}

// checkOverrides verifies that a cache shadows the values and deletions of
// its parent.
func checkOverrides(t *testing.T, factory StoreFactory) {
	keys := randomPairs(3, 12, 0)
	vals := randomPairs(4, 24, 0)
	a, b, c := keys[0].Key, keys[1].Key, keys[2].Key

	parent, cleanup := factory()
	defer cleanup()
	applyOps(t, parent, SetOp(a, vals[0].Key), SetOp(b, vals[1].Key))

	child := parent.CacheWrap()
	applyOps(t, child, SetOp(a, vals[2].Key), DelOp(b), SetOp(c, vals[3].Key))

	want := []Model{weave.Pair(a, vals[2].Key), weave.Pair(b, nil), weave.Pair(c, vals[3].Key)}
	expectValues(t, parent, []Model{weave.Pair(a, vals[0].Key), weave.Pair(b, vals[1].Key), weave.Pair(c, nil)})
	expectValues(t, child, want)

	assert.Nil(t, child.Write())
	expectValues(t, parent, want)
}

func checkRandomIteration(t *testing.T, factory StoreFactory) {
	const size = 40

	written := randomPairs(size, 8, 32)
	inParent := randomPairs(size, 8, 32)
	// Deleting keys that were never written must not disturb iteration.
	missing := randomPairs(size/2, 8, 32)

	childOnly := sortedPairs(written)
	merged := sortedPairs(append(append([]Model{}, written...), inParent...))

	cases := map[string]struct {
		parent []Op
		want   []Model
	}{
		"empty parent": {
			parent: nil,
			want:   childOnly,
		},
		"merged with parent": {
			parent: append(setOps(inParent), delOps(missing)...),
			want:   merged,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := factory()
			defer cleanup()
			applyOps(t, base, tc.parent...)

			child := base.CacheWrap()
			applyOps(t, child, append(setOps(written), delOps(missing)...)...)

			w := tc.want
			n := len(w)
			for _, r := range []iterRange{
				{want: w},
				{start: w[7].Key, want: w[7:]},
				{end: w[n-5].Key, want: w[:n-5]},
				{start: w[3].Key, end: w[21].Key, want: w[3:21]},
				{reverse: true, want: w},
				{reverse: true, start: w[12].Key, want: w[12:]},
				{reverse: true, end: w[9].Key, want: w[:9]},
				{reverse: true, start: w[4].Key, end: w[17].Key, want: w[4:17]},
			} {
				r.check(t, child)
			}
		})
	}
}

// checkIterationOverrides covers iteration over keys that are written in
// one layer and overwritten or deleted in another.
func checkIterationOverrides(t *testing.T, factory StoreFactory) {
	ms := randomPairs(4, 16, 64)
	a, b, c, d := ms[0], ms[1], ms[2], ms[3]
	a2 := weave.Pair(a.Key, []byte("overwritten a"))
	b2 := weave.Pair(b.Key, []byte("overwritten b"))

	abc := sortedPairs([]Model{a, b, c})
	overwritten := sortedPairs([]Model{a2, b2, c, d})

	cases := map[string]struct {
		parent []Op
		child  []Op
		ranges []iterRange
	}{
		"child only": {
			child: setOps([]Model{a, b, c}),
			ranges: []iterRange{
				{want: abc},
				{start: abc[1].Key, end: abc[2].Key, want: abc[1:2]},
				{reverse: true, want: abc},
			},
		},
		"parent only": {
			parent: setOps([]Model{a, b, c}),
			ranges: []iterRange{
				{want: abc},
				{reverse: true, start: abc[1].Key, want: abc[1:]},
			},
		},
		"split between layers": {
			parent: setOps([]Model{a, b}),
			child:  setOps([]Model{c}),
			ranges: []iterRange{
				{want: abc},
				{reverse: true, want: abc},
			},
		},
		"child values win": {
			parent: setOps([]Model{a, b, c}),
			child:  setOps([]Model{a2, b2, d}),
			ranges: []iterRange{
				{want: overwritten},
				{start: overwritten[1].Key, end: overwritten[3].Key, want: overwritten[1:3]},
				{reverse: true, want: overwritten},
			},
		},
		"child deletes hide parent": {
			parent: setOps([]Model{a, c, d}),
			child:  delOps([]Model{a, b, d}),
			ranges: []iterRange{
				{want: []Model{c}},
				{end: c.Key, want: nil},
				{reverse: true, want: []Model{c}},
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := factory()
			defer cleanup()
			applyOps(t, base, tc.parent...)
			child := base.CacheWrap()
			applyOps(t, child, tc.child...)
			for _, r := range tc.ranges {
				r.check(t, child)
			}
		})
	}
}

func expectValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

// expectValues checks every pair. A nil value means the key must be absent.
func expectValues(t testing.TB, kv ReadOnlyKVStore, want []Model) {
	t.Helper()
	for _, m := range want {
		expectValue(t, kv, m.Key, m.Value)
	}
}

func applyOps(t testing.TB, kv SetDeleter, ops ...Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
	}
}

// iterRange describes a single iteration and its expected result. want is
// always given in ascending order.
type iterRange struct {
	start   []byte
	end     []byte
	reverse bool
	want    []Model
}

func (r iterRange) check(t testing.TB, kv ReadOnlyKVStore) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	want := r.want
	if r.reverse {
		it, err = kv.ReverseIterator(r.start, r.end)
		want = reversed(want)
	} else {
		it, err = kv.Iterator(r.start, r.end)
	}
	assert.Nil(t, err)
	defer it.Close()

	for i, m := range want {
		if !it.Valid() {
			t.Fatalf("iterator stopped after %d of %d pairs", i, len(want))
		}
		if !bytes.Equal(m.Key, it.Key()) {
			t.Fatalf("pair %d: want key %X, got %X", i, m.Key, it.Key())
		}
		assert.Equal(t, m.Value, it.Value())
		assert.Nil(t, it.Next())
	}
	if it.Valid() {
		t.Fatalf("unexpected key %X after %d pairs", it.Key(), len(want))
	}
}

// randomPairs returns count pairs with random keys and values. A zero
// valueSize leaves the values empty.
func randomPairs(count, keySize, valueSize int) []Model {
	res := make([]Model, count)
	for i := range res {
		res[i].Key = randomBytes(keySize)
		if valueSize > 0 {
			res[i].Value = randomBytes(valueSize)
		}
	}
	return res
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("random source: %s", err))
	}
	return b
}

func sortedPairs(ms []Model) []Model {
	res := append([]Model(nil), ms...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func reversed(ms []Model) []Model {
	res := make([]Model, len(ms))
	for i, m := range ms {
		res[len(ms)-1-i] = m
	}
	return res
}

func setOps(ms []Model) []Op {
	ops := make([]Op, 0, len(ms))
	for _, m := range ms {
		ops = append(ops, SetOp(m.Key, m.Value))
	}
	return ops
}

func delOps(ms []Model) []Op {
	ops := make([]Op, 0, len(ms))
	for _, m := range ms {
		ops = append(ops, DelOp(m.Key))
	}
	return ops
}
