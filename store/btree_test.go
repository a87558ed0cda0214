package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocktrust/gavel/errors"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("francis"), []byte("dashwood")

	has, err := db.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.Set(k, v))
	got, err := db.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, db.Delete(k))
	got, err = db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))

	// Discarded writes must not be visible in the parent.
	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))

	got, err := cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got, "delete must be visible inside the cache")

	cache.Discard()

	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	got, err = db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, got)

	// Written changes must be applied to the parent.
	cache = db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))
	require.NoError(t, cache.Write())

	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func consume(t *testing.T, it Iterator) []Model {
	t.Helper()
	defer it.Release()

	var out []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return out
		}
		require.NoError(t, err)
		out = append(out, Model{Key: key, Value: value})
	}
}

func TestCacheIteratorMergesWithParent(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Set([]byte("c"), []byte("3")))
	require.NoError(t, db.Set([]byte("d"), []byte("4")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))  // new key
	require.NoError(t, cache.Set([]byte("c"), []byte("33"))) // overwrite
	require.NoError(t, cache.Delete([]byte("d")))            // hide

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	got := consume(t, it)

	want := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("33")},
	}
	assert.Equal(t, want, got)
}

func TestCacheReverseIterator(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Set([]byte("b"), []byte("2")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("c"), []byte("3")))

	it, err := cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	got := consume(t, it)

	want := []Model{
		{Key: []byte("c"), Value: []byte("3")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("a"), Value: []byte("1")},
	}
	assert.Equal(t, want, got)
}

func TestIteratorRange(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}

	it, err := db.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	got := consume(t, it)

	// End is exclusive.
	want := []Model{
		{Key: []byte("b"), Value: []byte("b")},
		{Key: []byte("c"), Value: []byte("c")},
	}
	assert.Equal(t, want, got)
}
