package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/store"
)

// writeHandler writes one key and then reports the configured result.
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ gavel.Handler = writeHandler{}

func (h writeHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &gavel.DeliverResult{}, h.err
}

func TestSavepointRollsBackOnError(t *testing.T) {
	db := store.MemStore()
	h := writeHandler{
		key:   []byte("trail"),
		value: []byte("data"),
		err:   errors.Wrap(errors.ErrState, "boom"),
	}
	sp := NewSavepoint().OnCheck().OnDeliver()
	ctx := context.Background()

	_, err := sp.Deliver(ctx, db, nil, h)
	require.Error(t, err)
	got, err := db.Get([]byte("trail"))
	require.NoError(t, err)
	assert.Nil(t, got, "failed deliver must leave no writes behind")

	_, err = sp.Check(ctx, db, nil, h)
	require.Error(t, err)
	got, err = db.Get([]byte("trail"))
	require.NoError(t, err)
	assert.Nil(t, got, "failed check must leave no writes behind")
}

func TestSavepointCommitsOnSuccess(t *testing.T) {
	db := store.MemStore()
	h := writeHandler{key: []byte("trail"), value: []byte("data")}
	sp := NewSavepoint().OnDeliver()

	_, err := sp.Deliver(context.Background(), db, nil, h)
	require.NoError(t, err)
	got, err := db.Get([]byte("trail"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestInactiveSavepointPassesThrough(t *testing.T) {
	db := store.MemStore()
	h := writeHandler{
		key:   []byte("trail"),
		value: []byte("data"),
		err:   errors.Wrap(errors.ErrState, "boom"),
	}

	// Without activation the writes survive even a failed call.
	_, err := NewSavepoint().Deliver(context.Background(), db, nil, h)
	require.Error(t, err)
	got, err := db.Get([]byte("trail"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}
