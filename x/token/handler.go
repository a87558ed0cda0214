package token

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/x"
)

const sendCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r gavel.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, SendHandler{auth: auth, control: control})
}

// SendHandler moves tokens between wallets on behalf of the source.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ gavel.Handler = SendHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h SendHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{GasAllocated: sendCost}, nil
}

// Deliver moves the tokens from source to destination if all preconditions
// are met.
func (h SendHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &gavel.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := gavel.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	// Only the wallet holder can spend from it.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source not signed")
	}
	return &msg, nil
}
