package govern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/gaveltest"
)

func TestOwnerSetMembership(t *testing.T) {
	a, b, c := gaveltest.NewAddress(), gaveltest.NewAddress(), gaveltest.NewAddress()
	set := &OwnerSet{Owners: []gavel.Address{a, b}}

	assert.True(t, set.Has(a))
	assert.False(t, set.Has(c))

	require.NoError(t, set.Add(c))
	assert.True(t, set.Has(c))

	err := set.Add(a)
	assert.True(t, ErrAlreadyOwner.Is(err))
	assert.Len(t, set.Owners, 3)
}

func TestOwnerSetRemove(t *testing.T) {
	a, b, c := gaveltest.NewAddress(), gaveltest.NewAddress(), gaveltest.NewAddress()
	set := &OwnerSet{Owners: []gavel.Address{a, b, c}}

	err := set.Remove(gaveltest.NewAddress())
	assert.True(t, ErrNotOwner.Is(err))

	// The freed slot is filled by the last member, order is not
	// significant.
	require.NoError(t, set.Remove(a))
	assert.Len(t, set.Owners, 2)
	assert.False(t, set.Has(a))
	assert.True(t, set.Has(b))
	assert.True(t, set.Has(c))

	require.NoError(t, set.Remove(b))
	err = set.Remove(c)
	assert.True(t, ErrLastOwner.Is(err))
	assert.True(t, set.Has(c))
}

func TestOwnerSetValidate(t *testing.T) {
	a := gaveltest.NewAddress()

	err := (&OwnerSet{}).Validate()
	assert.True(t, errors.ErrEmpty.Is(err))

	err = (&OwnerSet{Owners: []gavel.Address{a, a}}).Validate()
	assert.True(t, errors.ErrDuplicate.Is(err))

	assert.NoError(t, (&OwnerSet{Owners: []gavel.Address{a}}).Validate())
}

func TestConfirmationList(t *testing.T) {
	a, b := gaveltest.NewAddress(), gaveltest.NewAddress()
	list := &ConfirmationList{Confirmers: []gavel.Address{a}}

	require.NoError(t, list.Add(b))
	err := list.Add(b)
	assert.True(t, ErrAlreadyConfirmed.Is(err))
	assert.Len(t, list.Confirmers, 2)

	// Proposer stays the first entry.
	assert.Equal(t, a, list.Confirmers[0])
}

func TestTransactionValidate(t *testing.T) {
	target := gaveltest.NewAddress()
	cases := map[string]struct {
		tx      Transaction
		wantErr *errors.Error
	}{
		"valid supply change": {
			tx: Transaction{Kind: KindIncreaseSupply, Amount: 100, Timestamp: 1234567890},
		},
		"valid address change": {
			tx: Transaction{Kind: KindAddOwner, Target: target, Timestamp: 1234567890},
		},
		"unknown kind": {
			tx:      Transaction{Kind: Kind(66), Amount: 100},
			wantErr: errors.ErrInput,
		},
		"supply change needs positive amount": {
			tx:      Transaction{Kind: KindDecreaseSupply, Amount: 0},
			wantErr: errors.ErrAmount,
		},
		"address change needs a target": {
			tx:      Transaction{Kind: KindRemoveOwner},
			wantErr: errors.ErrEmpty,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.tx.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}
