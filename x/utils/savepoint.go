package utils

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

// Savepoint will isolate all data inside of the call, and commit or
// rollback the writes depending on the result. This is normally mounted in
// front of the router, so a failed call never leaves partial state behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ gavel.Decorator = Savepoint{}

// NewSavepoint creates a savepoint decorator that is not yet active for
// either path.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that is active on the check path.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that is active on the deliver path.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check wraps the store in a cache that is only written on success.
func (s Savepoint) Check(ctx gavel.Context, store gavel.KVStore, tx gavel.Tx, next gavel.Checker) (*gavel.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	cstore, ok := store.(gavel.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver wraps the store in a cache that is only written on success.
func (s Savepoint) Deliver(ctx gavel.Context, store gavel.KVStore, tx gavel.Tx, next gavel.Deliverer) (*gavel.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	cstore, ok := store.(gavel.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return res, nil
}
