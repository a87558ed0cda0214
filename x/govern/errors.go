package govern

import (
	"github.com/blocktrust/gavel/errors"
)

var (
	// ErrAlreadyConfirmed is returned when an owner confirms the same
	// transaction a second time.
	ErrAlreadyConfirmed = errors.Register(1100, "already confirmed")

	// ErrAlreadyExecuted is returned on any mutation of a terminal
	// transaction, no matter if it was executed or removed.
	ErrAlreadyExecuted = errors.Register(1101, "already executed")

	// ErrInsufficientConfirmations is returned when executing a
	// transaction that lacks a strict majority of confirmations.
	ErrInsufficientConfirmations = errors.Register(1102, "insufficient confirmations")

	// ErrTooManyConfirmations is returned when removing a transaction
	// that is no longer supported by only a strict minority.
	ErrTooManyConfirmations = errors.Register(1103, "too many confirmations")

	// ErrTimeLock is returned when executing a transaction before its
	// time lock elapsed.
	ErrTimeLock = errors.Register(1104, "time lock not elapsed")

	// ErrLastOwner is returned when removing the only remaining owner.
	ErrLastOwner = errors.Register(1105, "cannot remove the last owner")

	// ErrAlreadyOwner is returned when adding an existing owner.
	ErrAlreadyOwner = errors.Register(1106, "already an owner")

	// ErrNotOwner is returned when removing an address that is not an
	// owner.
	ErrNotOwner = errors.Register(1107, "not an owner")
)
