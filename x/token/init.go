package token

import (
	"math"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

// Initializer fulfills the gavel.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ gavel.Initializer = Initializer{}

// FromGenesis initializes the token info and the initial wallets from the
// genesis options. The total supply is the sum of all initial balances.
// Expected format:
//
//	"token": {
//	    "receiver": "C5B2...",
//	    "burner": "A1F0...",
//	    "wallets": [
//	        {"address": "5AE2...", "balance": 50000}
//	    ]
//	}
func (Initializer) FromGenesis(opts gavel.Options, db gavel.KVStore) error {
	var genesis struct {
		Receiver gavel.Address `json:"receiver"`
		Burner   gavel.Address `json:"burner"`
		Wallets  []struct {
			Address gavel.Address `json:"address"`
			Balance int64         `json:"balance"`
		} `json:"wallets"`
	}
	if err := opts.ReadOptions("token", &genesis); err != nil {
		return errors.Wrap(err, "token options")
	}
	// No token section in genesis means the ledger stays uninitialized.
	if len(genesis.Receiver) == 0 && len(genesis.Burner) == 0 && len(genesis.Wallets) == 0 {
		return nil
	}

	wallets := NewWalletBucket()
	var supply int64
	for i, w := range genesis.Wallets {
		if err := w.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d address", i)
		}
		if w.Balance < 0 {
			return errors.Wrapf(errors.ErrAmount, "wallet #%d balance", i)
		}
		if supply > math.MaxInt64-w.Balance {
			return errors.Wrap(errors.ErrOverflow, "total supply")
		}
		supply += w.Balance
		if err := wallets.Update(db, w.Address, &Wallet{Balance: w.Balance}); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}

	info := &TokenInfo{
		TotalSupply: supply,
		Receiver:    genesis.Receiver,
		Burner:      genesis.Burner,
	}
	if err := NewInfoBucket().Update(db, info); err != nil {
		return errors.Wrap(err, "token info")
	}
	return nil
}
