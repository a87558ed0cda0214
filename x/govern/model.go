package govern

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/orm"
)

const maxDescriptionSize = 1024

var _ orm.CloneableData = (*Transaction)(nil)

// Validate ensures the transaction is consistent with its kind.
func (m *Transaction) Validate() error {
	if err := m.Kind.Validate(); err != nil {
		return err
	}
	if m.Kind.SupplyChange() && m.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if m.Kind.AddressChange() {
		if err := m.Target.Validate(); err != nil {
			return errors.Wrap(err, "target")
		}
	}
	if err := m.Timestamp.Validate(); err != nil {
		return errors.Wrap(err, "timestamp")
	}
	if err := m.LockTime.Validate(); err != nil {
		return errors.Wrap(err, "lock time")
	}
	if len(m.Description) > maxDescriptionSize {
		return errors.Wrapf(errors.ErrInput, "description too long: %d", len(m.Description))
	}
	return nil
}

// Copy produces an independent copy of the transaction.
func (m *Transaction) Copy() orm.CloneableData {
	return &Transaction{
		Kind:        m.Kind,
		Executed:    m.Executed,
		Amount:      m.Amount,
		Target:      m.Target.Clone(),
		Timestamp:   m.Timestamp,
		LockTime:    m.LockTime,
		Description: m.Description,
	}
}

var _ orm.CloneableData = (*ConfirmationList)(nil)

// Validate ensures at least one valid confirmer and no duplicates.
func (m *ConfirmationList) Validate() error {
	if len(m.Confirmers) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no confirmers")
	}
	return validateDistinct(m.Confirmers)
}

// Copy produces an independent copy of the list.
func (m *ConfirmationList) Copy() orm.CloneableData {
	return &ConfirmationList{
		Confirmers: cloneAddresses(m.Confirmers),
	}
}

// Has returns true if the address already confirmed.
func (m *ConfirmationList) Has(addr gavel.Address) bool {
	return containsAddress(m.Confirmers, addr)
}

// Add appends a confirmer, rejecting duplicates.
func (m *ConfirmationList) Add(addr gavel.Address) error {
	if m.Has(addr) {
		return errors.Wrapf(ErrAlreadyConfirmed, "%s", addr)
	}
	m.Confirmers = append(m.Confirmers, addr)
	return nil
}

var _ orm.CloneableData = (*OwnerSet)(nil)

// Validate ensures the set is never empty and all members are distinct.
func (m *OwnerSet) Validate() error {
	if len(m.Owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no owners")
	}
	return validateDistinct(m.Owners)
}

// Copy produces an independent copy of the set.
func (m *OwnerSet) Copy() orm.CloneableData {
	return &OwnerSet{
		Owners: cloneAddresses(m.Owners),
	}
}

// Has returns true if the address is a member of the set.
func (m *OwnerSet) Has(addr gavel.Address) bool {
	return containsAddress(m.Owners, addr)
}

// Add appends a new owner to the set.
func (m *OwnerSet) Add(addr gavel.Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	if m.Has(addr) {
		return errors.Wrapf(ErrAlreadyOwner, "%s", addr)
	}
	m.Owners = append(m.Owners, addr)
	return nil
}

// Remove drops an owner from the set. The order of the remaining members
// is not significant, so the last member is swapped into the freed slot.
func (m *OwnerSet) Remove(addr gavel.Address) error {
	idx := -1
	for i, o := range m.Owners {
		if o.Equals(addr) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.Wrapf(ErrNotOwner, "%s", addr)
	}
	if len(m.Owners) == 1 {
		return errors.Wrap(ErrLastOwner, "owner set cannot be empty")
	}
	last := len(m.Owners) - 1
	m.Owners[idx] = m.Owners[last]
	m.Owners = m.Owners[:last]
	return nil
}

var _ orm.CloneableData = (*Config)(nil)

// Validate allows an unset executor. With no executor only owners can
// trigger execution.
func (m *Config) Validate() error {
	if len(m.Executor) == 0 {
		return nil
	}
	return m.Executor.Validate()
}

// Copy produces an independent copy of the configuration.
func (m *Config) Copy() orm.CloneableData {
	return &Config{
		Executor: m.Executor.Clone(),
	}
}

func cloneAddresses(in []gavel.Address) []gavel.Address {
	if in == nil {
		return nil
	}
	out := make([]gavel.Address, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

func containsAddress(list []gavel.Address, addr gavel.Address) bool {
	for _, a := range list {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

func validateDistinct(list []gavel.Address) error {
	for i, a := range list {
		if err := a.Validate(); err != nil {
			return err
		}
		if containsAddress(list[:i], a) {
			return errors.Wrapf(errors.ErrDuplicate, "address %s", a)
		}
	}
	return nil
}
