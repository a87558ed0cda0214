package govern

import (
	"github.com/blocktrust/gavel/errors"
)

// CheckExecutable decides if a transaction with the given number of
// confirmations can be executed against the current owner count.
//
// Execution requires a strict majority, ties fail. Confirmations outlive
// membership changes, so a transaction confirmed by more identities than
// there are owners left is always executable.
func CheckExecutable(confirmations, owners int) error {
	if confirmations > owners {
		return nil
	}
	if confirmations <= owners-confirmations {
		return errors.Wrapf(ErrInsufficientConfirmations,
			"%d confirmations of %d owners", confirmations, owners)
	}
	return nil
}

// CheckRemovable decides if a transaction with the given number of
// confirmations can be removed. Removal requires a strict minority. A
// transaction that already gathered majority support must be resolved by
// execution, never silently discarded.
func CheckRemovable(confirmations, owners int) error {
	if confirmations >= owners || confirmations >= owners-confirmations {
		return errors.Wrapf(ErrTooManyConfirmations,
			"%d confirmations of %d owners", confirmations, owners)
	}
	return nil
}
