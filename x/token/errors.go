package token

import (
	"github.com/blocktrust/gavel/errors"
)

var (
	// ErrInsufficientFunds is returned when a wallet balance is too low
	// for the requested debit.
	ErrInsufficientFunds = errors.Register(1200, "insufficient funds")
)
