package govern

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckExecutable(t *testing.T) {
	cases := []struct {
		confirmations int
		owners        int
		executable    bool
	}{
		// Strict majority, ties fail.
		{confirmations: 2, owners: 3, executable: true},
		{confirmations: 1, owners: 3, executable: false},
		{confirmations: 2, owners: 4, executable: false},
		{confirmations: 3, owners: 4, executable: true},
		{confirmations: 3, owners: 5, executable: true},
		{confirmations: 1, owners: 1, executable: true},
		{confirmations: 1, owners: 2, executable: false},
		// Confirmations outlive membership changes.
		{confirmations: 3, owners: 2, executable: true},
		{confirmations: 5, owners: 1, executable: true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d of %d", tc.confirmations, tc.owners), func(t *testing.T) {
			err := CheckExecutable(tc.confirmations, tc.owners)
			if tc.executable {
				assert.NoError(t, err)
			} else {
				assert.True(t, ErrInsufficientConfirmations.Is(err))
			}
		})
	}
}

func TestCheckRemovable(t *testing.T) {
	cases := []struct {
		confirmations int
		owners        int
		removable     bool
	}{
		{confirmations: 1, owners: 3, removable: true},
		{confirmations: 1, owners: 5, removable: true},
		{confirmations: 2, owners: 5, removable: true},
		// Majority confirmed transactions must be executed instead.
		{confirmations: 2, owners: 3, removable: false},
		{confirmations: 3, owners: 5, removable: false},
		// A tie is already too much support to discard.
		{confirmations: 2, owners: 4, removable: false},
		{confirmations: 1, owners: 1, removable: false},
		{confirmations: 3, owners: 2, removable: false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d of %d", tc.confirmations, tc.owners), func(t *testing.T) {
			err := CheckRemovable(tc.confirmations, tc.owners)
			if tc.removable {
				assert.NoError(t, err)
			} else {
				assert.True(t, ErrTooManyConfirmations.Is(err))
			}
		})
	}
}
