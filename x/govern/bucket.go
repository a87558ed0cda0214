package govern

import (
	"encoding/binary"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/orm"
)

const (
	transactionBucketName  = "govtx"
	confirmationBucketName = "govsig"
	ownerBucketName        = "govown"
	configBucketName       = "govconf"

	pendingIndexName = "pending"
)

// transactionKey builds the primary key of a transaction, one byte of kind
// followed by the big endian index. Keys of one kind sort by index.
func transactionKey(kind Kind, index int64) []byte {
	key := make([]byte, 9)
	key[0] = byte(kind)
	binary.BigEndian.PutUint64(key[1:], uint64(index))
	return key
}

// pendingKindIndexer keeps every non terminal transaction in a per kind
// pending set. Terminal transactions return no index value, so they drop
// out of the set on the save that marks them terminal.
func pendingKindIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot index nil")
	}
	tx, err := asTransaction(obj)
	if err != nil {
		return nil, err
	}
	if tx.Executed {
		return nil, nil
	}
	return []byte{byte(tx.Kind)}, nil
}

func asTransaction(obj orm.Object) (*Transaction, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	tx, ok := obj.Value().(*Transaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return tx, nil
}

// TransactionBucket stores the governed transactions. Every kind has its
// own index namespace, assigned from zero, strictly incrementing and never
// reused, not even after removal.
type TransactionBucket struct {
	orm.Bucket
}

// NewTransactionBucket creates a bucket with the pending set attached as a
// secondary index.
func NewTransactionBucket() TransactionBucket {
	b := orm.NewBucket(transactionBucketName,
		orm.NewSimpleObj(nil, new(Transaction))).
		WithIndex(pendingIndexName, pendingKindIndexer, false)
	return TransactionBucket{Bucket: b}
}

// Create allocates the next index of the transaction kind and stores the
// record under it. It returns the stored object and the assigned index.
func (b TransactionBucket) Create(db gavel.KVStore, tx *Transaction) (orm.Object, int64, error) {
	seq, err := b.Sequence(tx.Kind.String()).NextInt(db)
	if err != nil {
		return nil, 0, err
	}
	// The sequence starts with one, indexes are exposed starting at zero.
	index := seq - 1
	obj := orm.NewSimpleObj(transactionKey(tx.Kind, index), tx)
	if err := b.Save(db, obj); err != nil {
		return nil, 0, err
	}
	return obj, index, nil
}

// GetTransaction loads one transaction, failing with not found for an
// index that was never assigned. Terminal transactions load fine, they
// remain readable for audit.
func (b TransactionBucket) GetTransaction(db gavel.ReadOnlyKVStore, kind Kind, index int64) (*Transaction, error) {
	obj, err := b.Get(db, transactionKey(kind, index))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %s/%d", kind, index)
	}
	return asTransaction(obj)
}

// Update persists a modified transaction under its existing key.
func (b TransactionBucket) Update(db gavel.KVStore, kind Kind, index int64, tx *Transaction) error {
	return b.Save(db, orm.NewSimpleObj(transactionKey(kind, index), tx))
}

// ListPending returns all non terminal transactions of one kind, ordered
// by index.
func (b TransactionBucket) ListPending(db gavel.ReadOnlyKVStore, kind Kind) ([]*Transaction, error) {
	objs, err := b.GetIndexed(db, pendingIndexName, []byte{byte(kind)})
	if err != nil {
		return nil, err
	}
	txs := make([]*Transaction, 0, len(objs))
	for _, obj := range objs {
		tx, err := asTransaction(obj)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ConfirmationBucket stores the confirmation list of every transaction,
// under the same composite key as the transaction itself.
type ConfirmationBucket struct {
	orm.Bucket
}

// NewConfirmationBucket creates a bucket for confirmation lists.
func NewConfirmationBucket() ConfirmationBucket {
	b := orm.NewBucket(confirmationBucketName,
		orm.NewSimpleObj(nil, new(ConfirmationList)))
	return ConfirmationBucket{Bucket: b}
}

// GetConfirmations loads the confirmation list of a transaction, failing
// with not found if the transaction was never created.
func (b ConfirmationBucket) GetConfirmations(db gavel.ReadOnlyKVStore, kind Kind, index int64) (*ConfirmationList, error) {
	obj, err := b.Get(db, transactionKey(kind, index))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "confirmations %s/%d", kind, index)
	}
	list, ok := obj.Value().(*ConfirmationList)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return list, nil
}

// Update persists a modified confirmation list.
func (b ConfirmationBucket) Update(db gavel.KVStore, kind Kind, index int64, list *ConfirmationList) error {
	return b.Save(db, orm.NewSimpleObj(transactionKey(kind, index), list))
}

var ownersKey = []byte("current")

// OwnerBucket stores the singleton owner set.
type OwnerBucket struct {
	orm.Bucket
}

// NewOwnerBucket creates a bucket for the owner set.
func NewOwnerBucket() OwnerBucket {
	b := orm.NewBucket(ownerBucketName,
		orm.NewSimpleObj(nil, new(OwnerSet)))
	return OwnerBucket{Bucket: b}
}

// GetOwners loads the owner set. The set must have been created during
// genesis, a missing set is an error.
func (b OwnerBucket) GetOwners(db gavel.ReadOnlyKVStore) (*OwnerSet, error) {
	obj, err := b.Get(db, ownersKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "owner set not initialized")
	}
	set, ok := obj.Value().(*OwnerSet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return set, nil
}

// Update persists the owner set.
func (b OwnerBucket) Update(db gavel.KVStore, set *OwnerSet) error {
	return b.Save(db, orm.NewSimpleObj(ownersKey, set))
}

var configKey = []byte("current")

// ConfigBucket stores the singleton governance configuration.
type ConfigBucket struct {
	orm.Bucket
}

// NewConfigBucket creates a bucket for the configuration.
func NewConfigBucket() ConfigBucket {
	b := orm.NewBucket(configBucketName,
		orm.NewSimpleObj(nil, new(Config)))
	return ConfigBucket{Bucket: b}
}

// GetConfig loads the configuration. A missing record means an empty
// configuration with no executor set.
func (b ConfigBucket) GetConfig(db gavel.ReadOnlyKVStore) (*Config, error) {
	obj, err := b.Get(db, configKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return new(Config), nil
	}
	conf, ok := obj.Value().(*Config)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return conf, nil
}

// Update persists the configuration.
func (b ConfigBucket) Update(db gavel.KVStore, conf *Config) error {
	return b.Save(db, orm.NewSimpleObj(configKey, conf))
}
