package govern

import (
	"github.com/blocktrust/gavel"
)

// Ledger is the token collaborator driven by the execution path. All
// mutators must leave the store untouched when they return an error, the
// engine relies on that to keep execution all or nothing.
type Ledger interface {
	// IncreaseSupply mints the given amount to the configured receiver.
	IncreaseSupply(db gavel.KVStore, amount int64) error

	// DecreaseSupply burns the given amount from the burn reserve. Fails
	// if the reserve balance is insufficient.
	DecreaseSupply(db gavel.KVStore, amount int64) error

	// ChangeReceiver points future supply increases at another address.
	ChangeReceiver(db gavel.KVStore, target gavel.Address) error
}
