package gaveltest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/blocktrust/gavel"
)

var addressCounter uint64

// NewAddress returns a new unique address. Addresses are deterministic
// within a process to keep test failures reproducible.
func NewAddress() gavel.Address {
	n := atomic.AddUint64(&addressCounter, 1)
	addr := make(gavel.Address, gavel.AddressLength)
	binary.BigEndian.PutUint64(addr[gavel.AddressLength-8:], n)
	return addr
}
