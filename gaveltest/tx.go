package gaveltest

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

// Tx is a gavel.Tx implementation that carries exactly one message.
type Tx struct {
	// Msg is the message this transaction delivers.
	Msg gavel.Msg

	// Err, if set, is returned by any method call.
	Err error
}

var _ gavel.Tx = (*Tx)(nil)

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (gavel.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Marshal serializes the carried message.
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

// Unmarshal is not supported, a test transaction is built in memory.
func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "unmarshal not supported")
}
