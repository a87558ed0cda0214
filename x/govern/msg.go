package govern

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

// Ensure all messages fulfill the Msg interface.
var (
	_ gavel.Msg = (*ProposeMsg)(nil)
	_ gavel.Msg = (*ConfirmMsg)(nil)
	_ gavel.Msg = (*RemoveMsg)(nil)
	_ gavel.Msg = (*ExecuteMsg)(nil)
	_ gavel.Msg = (*ChangeExecutorMsg)(nil)
)

const (
	pathProposeMsg        = "govern/propose"
	pathConfirmMsg        = "govern/confirm"
	pathRemoveMsg         = "govern/remove"
	pathExecuteMsg        = "govern/execute"
	pathChangeExecutorMsg = "govern/change_executor"
)

// Path fulfills gavel.Msg interface to allow routing.
func (ProposeMsg) Path() string {
	return pathProposeMsg
}

// Validate ensures the payload matches the kind. Supply kinds need a
// positive amount, address kinds a valid target.
func (m ProposeMsg) Validate() error {
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
	if err := m.LockTime.Validate(); err != nil {
		return errors.Wrap(err, "lock time")
	}
	if len(m.Description) > maxDescriptionSize {
		return errors.Wrapf(errors.ErrInput, "description too long: %d", len(m.Description))
	}
	return nil
}

// Path fulfills gavel.Msg interface to allow routing.
func (ConfirmMsg) Path() string {
	return pathConfirmMsg
}

// Validate fulfills gavel.Msg interface.
func (m ConfirmMsg) Validate() error {
	return validateRef(m.Kind, m.Index)
}

// Path fulfills gavel.Msg interface to allow routing.
func (RemoveMsg) Path() string {
	return pathRemoveMsg
}

// Validate fulfills gavel.Msg interface.
func (m RemoveMsg) Validate() error {
	return validateRef(m.Kind, m.Index)
}

// Path fulfills gavel.Msg interface to allow routing.
func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

// Validate fulfills gavel.Msg interface.
func (m ExecuteMsg) Validate() error {
	return validateRef(m.Kind, m.Index)
}

// Path fulfills gavel.Msg interface to allow routing.
func (ChangeExecutorMsg) Path() string {
	return pathChangeExecutorMsg
}

// Validate requires a well formed executor address. A zero address cannot
// become the executor.
func (m ChangeExecutorMsg) Validate() error {
	if err := m.Executor.Validate(); err != nil {
		return errors.Wrap(err, "executor")
	}
	return nil
}

func validateRef(kind Kind, index int64) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if index < 0 {
		return errors.Wrapf(errors.ErrInput, "negative index %d", index)
	}
	return nil
}
