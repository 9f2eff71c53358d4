package orm

import (
	"testing"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/store"
	"github.com/nftrade/weave/weavetest/assert"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"normal":                 {[]byte{1, 3, 4}, []byte{1, 3, 5}},
		"normal short":           {[]byte{79}, []byte{80}},
		"empty cases":            {nil, nil},
		"roll-over example 1":    {[]byte{17, 28, 255}, []byte{17, 29, 0}},
		"roll-over example 2":    {[]byte{15, 42, 255, 255}, []byte{15, 43, 0, 0}},
		"pathological roll-over": {[]byte{255, 255, 255, 255}, nil},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.prefix, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestQueryPrefix(t *testing.T) {
	m := weave.Model{Key: []byte{3, 17, 98}, Value: []byte{1}}
	m2 := weave.Model{Key: []byte{3, 17, 42}, Value: []byte{2}}
	m3 := weave.Model{Key: []byte{25, 16}, Value: []byte{3}}
	m4 := weave.Model{Key: []byte{3, 93, 11, 134}, Value: []byte{4}}

	db := store.MemStore()
	for _, x := range []weave.Model{m, m2, m3, m4} {
		assert.Nil(t, db.Set(x.Key, x.Value))
	}

	cases := map[string]struct {
		prefix []byte
		want   []weave.Model
	}{
		"no match":      {[]byte{7}, nil},
		"single match":  {[]byte{25}, []weave.Model{m3}},
		"sorted result": {[]byte{3, 17}, []weave.Model{m2, m}},
		"wider prefix":  {[]byte{3}, []weave.Model{m2, m, m4}},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := queryPrefix(db, tc.prefix)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
