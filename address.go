package gavel

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/blocktrust/gavel/errors"
)

// AddressLength is the length of all addresses. It must not change during
// the lifetime of a store.
const AddressLength = 20

// Address identifies an actor: an owner, the executor, or a wallet holder.
// There is no key derivation here. The hosting environment authenticates
// callers and supplies their addresses; authorization inside the engine is
// equality against a known set.
type Address []byte

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns an independent copy of this address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// String returns a human readable string. Currently hex.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte(`null`), nil
	}
	return []byte(`"` + strings.ToUpper(hex.EncodeToString(a)) + `"`), nil
}

// UnmarshalJSON parses JSON in hex representation.
func (a *Address) UnmarshalJSON(src []byte) error {
	if bytes.Equal(src, []byte(`null`)) {
		*a = nil
		return nil
	}
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return errors.Wrap(errors.ErrInput, "address must be a hex string")
	}
	raw, err := hex.DecodeString(string(src[1 : len(src)-1]))
	if err != nil {
		return errors.Wrap(errors.ErrInput, "invalid hex address")
	}
	*a = raw
	return nil
}

// Validate returns an error if the address is not the valid size or is the
// zero address.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "invalid address length: %d", len(a))
	}
	if bytes.Equal(a, make([]byte, AddressLength)) {
		return errors.Wrap(errors.ErrEmpty, "zero address")
	}
	return nil
}
