package orm

import (
	"bytes"
	"testing"

	"github.com/nftrade/weave/store"
	"github.com/nftrade/weave/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := map[string]struct {
		bucket, name string
		increments   int64
	}{
		"first":            {"abc", "id", 22},
		"same bucket":      {"abc", "other", 11},
		"continues first":  {"abc", "id", 18},
		"different bucket": {"xyz", "id", 77},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			init, err := s.Latest(db)
			assert.Nil(t, err)
			orig := EncodeSequence(init)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				assert.Nil(t, err)
			}
			assert.Equal(t, init+tc.increments, val)

			bz, err := s.NextVal(db)
			assert.Nil(t, err)
			if bytes.Compare(bz, orig) != 1 {
				t.Fatalf("encoded sequence not increasing: %X <= %X", bz, orig)
			}
		})
	}
}

func TestDecodeSequenceRejectsInvalidLength(t *testing.T) {
	if _, err := DecodeSequence([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error")
	}
	v, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), v)
}
