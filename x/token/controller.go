package token

import (
	"math"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/x/govern"
)

// Controller is the ledger functionality, the writes against wallets and
// the token info. It is the collaborator the governance execution path
// drives. Every method performs all checks before the first write, so a
// failed call leaves the store untouched.
type Controller struct {
	wallets WalletBucket
	info    InfoBucket
}

var _ govern.Ledger = Controller{}

// NewController returns a controller bound to the standard buckets.
func NewController() Controller {
	return Controller{
		wallets: NewWalletBucket(),
		info:    NewInfoBucket(),
	}
}

// IncreaseSupply mints the given amount to the configured receiver.
func (c Controller) IncreaseSupply(db gavel.KVStore, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	info, err := c.info.GetInfo(db)
	if err != nil {
		return err
	}
	if info.TotalSupply > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	wallet, err := c.wallets.GetWallet(db, info.Receiver)
	if err != nil {
		return err
	}
	if wallet.Balance > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "receiver balance")
	}

	wallet.Balance += amount
	if err := c.wallets.Update(db, info.Receiver, wallet); err != nil {
		return err
	}
	info.TotalSupply += amount
	return c.info.Update(db, info)
}

// DecreaseSupply burns the given amount from the burn reserve. The call
// fails without side effects if the reserve balance is too low.
func (c Controller) DecreaseSupply(db gavel.KVStore, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	info, err := c.info.GetInfo(db)
	if err != nil {
		return err
	}
	wallet, err := c.wallets.GetWallet(db, info.Burner)
	if err != nil {
		return err
	}
	if wallet.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "burn reserve holds %d", wallet.Balance)
	}

	wallet.Balance -= amount
	if err := c.wallets.Update(db, info.Burner, wallet); err != nil {
		return err
	}
	info.TotalSupply -= amount
	return c.info.Update(db, info)
}

// ChangeReceiver points future supply increases at another address.
func (c Controller) ChangeReceiver(db gavel.KVStore, target gavel.Address) error {
	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	info, err := c.info.GetInfo(db)
	if err != nil {
		return err
	}
	info.Receiver = target
	return c.info.Update(db, info)
}

// MoveCoins transfers the amount between two wallets.
func (c Controller) MoveCoins(db gavel.KVStore, src, dest gavel.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "same source and destination")
	}
	sender, err := c.wallets.GetWallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "wallet holds %d", sender.Balance)
	}
	recipient, err := c.wallets.GetWallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	sender.Balance -= amount
	if err := c.wallets.Update(db, src, sender); err != nil {
		return err
	}
	recipient.Balance += amount
	return c.wallets.Update(db, dest, recipient)
}

// Balance returns the current balance of the given address. Unknown
// addresses hold zero.
func (c Controller) Balance(db gavel.ReadOnlyKVStore, addr gavel.Address) (int64, error) {
	wallet, err := c.wallets.GetWallet(db, addr)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// TotalSupply returns the current total token supply.
func (c Controller) TotalSupply(db gavel.ReadOnlyKVStore) (int64, error) {
	info, err := c.info.GetInfo(db)
	if err != nil {
		return 0, err
	}
	return info.TotalSupply, nil
}
