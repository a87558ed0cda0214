package govern

import (
	"github.com/blocktrust/gavel"
)

// Controller is the read only surface over governance state. The hosting
// environment uses it to answer queries without routing a transaction.
type Controller struct {
	txs    TransactionBucket
	sigs   ConfirmationBucket
	owners OwnerBucket
	conf   ConfigBucket
}

// NewController returns a controller bound to the standard buckets.
func NewController() Controller {
	return Controller{
		txs:    NewTransactionBucket(),
		sigs:   NewConfirmationBucket(),
		owners: NewOwnerBucket(),
		conf:   NewConfigBucket(),
	}
}

// GetTransaction loads one transaction, terminal ones included.
func (c Controller) GetTransaction(db gavel.ReadOnlyKVStore, kind Kind, index int64) (*Transaction, error) {
	return c.txs.GetTransaction(db, kind, index)
}

// GetConfirmations returns the ordered confirmers of one transaction.
func (c Controller) GetConfirmations(db gavel.ReadOnlyKVStore, kind Kind, index int64) ([]gavel.Address, error) {
	list, err := c.sigs.GetConfirmations(db, kind, index)
	if err != nil {
		return nil, err
	}
	return list.Confirmers, nil
}

// ListPending returns all non terminal transactions of one kind.
func (c Controller) ListPending(db gavel.ReadOnlyKVStore, kind Kind) ([]*Transaction, error) {
	return c.txs.ListPending(db, kind)
}

// ListOwners returns the current owner set.
func (c Controller) ListOwners(db gavel.ReadOnlyKVStore) ([]gavel.Address, error) {
	set, err := c.owners.GetOwners(db)
	if err != nil {
		return nil, err
	}
	return set.Owners, nil
}

// Executor returns the configured executor address, nil if none is set.
func (c Controller) Executor(db gavel.ReadOnlyKVStore) (gavel.Address, error) {
	conf, err := c.conf.GetConfig(db)
	if err != nil {
		return nil, err
	}
	return conf.Executor, nil
}
