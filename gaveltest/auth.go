package gaveltest

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/x"
)

// Auth is a mock of the x.Authenticator interface. The declared signers
// are authenticated for every context.
type Auth struct {
	// Signer is the main signer of the transaction.
	Signer gavel.Address

	// Signers are any additional signers. Signer is always returned
	// first.
	Signers []gavel.Address
}

var _ x.Authenticator = Auth{}

// GetAddresses returns all configured signers.
func (a Auth) GetAddresses(gavel.Context) []gavel.Address {
	var addrs []gavel.Address
	if a.Signer != nil {
		addrs = append(addrs, a.Signer)
	}
	return append(addrs, a.Signers...)
}

// HasAddress returns true if the address is one of the configured signers.
func (a Auth) HasAddress(ctx gavel.Context, addr gavel.Address) bool {
	for _, signer := range a.GetAddresses(ctx) {
		if signer.Equals(addr) {
			return true
		}
	}
	return false
}
