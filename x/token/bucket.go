package token

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/orm"
)

const (
	walletBucketName = "wallet"
	infoBucketName   = "tokinfo"
)

// WalletBucket stores one wallet per address.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket creates a bucket for wallets.
func NewWalletBucket() WalletBucket {
	b := orm.NewBucket(walletBucketName,
		orm.NewSimpleObj(nil, new(Wallet)))
	return WalletBucket{Bucket: b}
}

// GetWallet loads the wallet of the given address. A missing wallet is
// returned as an empty one, holding tokens is not a precondition for
// receiving them.
func (b WalletBucket) GetWallet(db gavel.ReadOnlyKVStore, addr gavel.Address) (*Wallet, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return new(Wallet), nil
	}
	wallet, ok := obj.Value().(*Wallet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return wallet, nil
}

// Update persists the wallet of the given address.
func (b WalletBucket) Update(db gavel.KVStore, addr gavel.Address, wallet *Wallet) error {
	return b.Save(db, orm.NewSimpleObj(addr, wallet))
}

var infoKey = []byte("current")

// InfoBucket stores the singleton token info record.
type InfoBucket struct {
	orm.Bucket
}

// NewInfoBucket creates a bucket for the token info.
func NewInfoBucket() InfoBucket {
	b := orm.NewBucket(infoBucketName,
		orm.NewSimpleObj(nil, new(TokenInfo)))
	return InfoBucket{Bucket: b}
}

// GetInfo loads the token info. The record must have been created during
// genesis, a missing record is an error.
func (b InfoBucket) GetInfo(db gavel.ReadOnlyKVStore) (*TokenInfo, error) {
	obj, err := b.Get(db, infoKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "token not initialized")
	}
	info, ok := obj.Value().(*TokenInfo)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return info, nil
}

// Update persists the token info.
func (b InfoBucket) Update(db gavel.KVStore, info *TokenInfo) error {
	return b.Save(db, orm.NewSimpleObj(infoKey, info))
}
