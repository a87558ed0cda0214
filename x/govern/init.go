package govern

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

// Initializer fulfills the gavel.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ gavel.Initializer = Initializer{}

// FromGenesis initializes the owner set and the optional executor from the
// genesis options. Expected format:
//
//	"govern": {
//	    "owners": ["C5B2...", ...],
//	    "executor": "A1F0..."
//	}
func (Initializer) FromGenesis(opts gavel.Options, db gavel.KVStore) error {
	var genesis struct {
		Owners   []gavel.Address `json:"owners"`
		Executor gavel.Address   `json:"executor"`
	}
	if err := opts.ReadOptions("govern", &genesis); err != nil {
		return errors.Wrap(err, "govern options")
	}
	if len(genesis.Owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "at least one owner required")
	}

	set := &OwnerSet{Owners: genesis.Owners}
	if err := NewOwnerBucket().Update(db, set); err != nil {
		return errors.Wrap(err, "owner set")
	}

	if len(genesis.Executor) != 0 {
		conf := &Config{Executor: genesis.Executor}
		if err := NewConfigBucket().Update(db, conf); err != nil {
			return errors.Wrap(err, "config")
		}
	}
	return nil
}
