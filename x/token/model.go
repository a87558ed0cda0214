package token

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/orm"
)

var _ orm.CloneableData = (*Wallet)(nil)

// Validate requires a non negative balance.
func (m *Wallet) Validate() error {
	if m.Balance < 0 {
		return errors.Wrap(errors.ErrState, "negative balance")
	}
	return nil
}

// Copy produces an independent copy of the wallet.
func (m *Wallet) Copy() orm.CloneableData {
	return &Wallet{Balance: m.Balance}
}

var _ orm.CloneableData = (*TokenInfo)(nil)

// Validate requires a consistent bookkeeping record. Receiver and burner
// must always be set, supply changes have nowhere to go otherwise.
func (m *TokenInfo) Validate() error {
	if m.TotalSupply < 0 {
		return errors.Wrap(errors.ErrState, "negative total supply")
	}
	if err := m.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if err := m.Burner.Validate(); err != nil {
		return errors.Wrap(err, "burner")
	}
	return nil
}

// Copy produces an independent copy of the record.
func (m *TokenInfo) Copy() orm.CloneableData {
	return &TokenInfo{
		TotalSupply: m.TotalSupply,
		Receiver:    m.Receiver.Clone(),
		Burner:      m.Burner.Clone(),
	}
}

// Ensure SendMsg fulfills the Msg interface.
var _ gavel.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "token/send"

	maxMemoSize = 128
)

// Path fulfills gavel.Msg interface to allow routing.
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible.
func (m SendMsg) Validate() error {
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if m.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo too long: %d", len(m.Memo))
	}
	return nil
}
