package govern

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/x"
)

const (
	proposeCost   int64 = 200
	confirmCost   int64 = 50
	terminateCost int64 = 100
	configCost    int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package. The ledger is the token collaborator that receives the supply
// and receiver mutations.
func RegisterRoutes(r gavel.Registry, auth x.Authenticator, ledger Ledger) {
	txs := NewTransactionBucket()
	sigs := NewConfirmationBucket()
	owners := NewOwnerBucket()
	conf := NewConfigBucket()

	r.Handle(pathProposeMsg, ProposeHandler{auth: auth, txs: txs, sigs: sigs, owners: owners})
	r.Handle(pathConfirmMsg, ConfirmHandler{auth: auth, txs: txs, sigs: sigs, owners: owners})
	r.Handle(pathRemoveMsg, RemoveHandler{auth: auth, txs: txs, sigs: sigs, owners: owners})
	r.Handle(pathExecuteMsg, ExecuteHandler{
		auth: auth, txs: txs, sigs: sigs, owners: owners, conf: conf, ledger: ledger,
	})
	r.Handle(pathChangeExecutorMsg, ChangeExecutorHandler{auth: auth, owners: owners, conf: conf})
}

// blockNow returns the time of the current call. Every time dependent
// decision within one call uses this single snapshot.
func blockNow(ctx gavel.Context) (gavel.UnixTime, error) {
	now, ok := gavel.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time not present in context")
	}
	return gavel.AsUnixTime(now), nil
}

// requireOwner loads the owner set and ensures the main transaction signer
// is a member.
func requireOwner(ctx gavel.Context, db gavel.ReadOnlyKVStore, auth x.Authenticator, owners OwnerBucket) (gavel.Address, *OwnerSet, error) {
	set, err := owners.GetOwners(db)
	if err != nil {
		return nil, nil, err
	}
	actor := x.MainActor(ctx, auth)
	if actor == nil || !set.Has(actor) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not an owner")
	}
	return actor, set, nil
}

// ProposeHandler creates a new transaction with the proposer as the first
// confirmer.
type ProposeHandler struct {
	auth   x.Authenticator
	txs    TransactionBucket
	sigs   ConfirmationBucket
	owners OwnerBucket
}

var _ gavel.Handler = ProposeHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h ProposeHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{GasAllocated: proposeCost}, nil
}

// Deliver stores the transaction, allocating the next index of its kind,
// and records the proposer as the first confirmation.
func (h ProposeHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	msg, proposer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	record := &Transaction{
		Kind:        msg.Kind,
		Amount:      msg.Amount,
		Target:      msg.Target,
		Timestamp:   now,
		LockTime:    msg.LockTime,
		Description: msg.Description,
	}
	obj, index, err := h.txs.Create(db, record)
	if err != nil {
		return nil, err
	}

	// Proposing implies the first confirmation.
	list := &ConfirmationList{Confirmers: []gavel.Address{proposer}}
	if err := h.sigs.Update(db, msg.Kind, index, list); err != nil {
		return nil, err
	}

	return &gavel.DeliverResult{Data: obj.Key()}, nil
}

func (h ProposeHandler) validate(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*ProposeMsg, gavel.Address, error) {
	var msg ProposeMsg
	if err := gavel.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	actor, _, err := requireOwner(ctx, db, h.auth, h.owners)
	if err != nil {
		return nil, nil, err
	}
	return &msg, actor, nil
}

// ConfirmHandler appends the caller to the confirmation list of a pending
// transaction and restarts its time lock.
type ConfirmHandler struct {
	auth   x.Authenticator
	txs    TransactionBucket
	sigs   ConfirmationBucket
	owners OwnerBucket
}

var _ gavel.Handler = ConfirmHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h ConfirmHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{GasAllocated: confirmCost}, nil
}

// Deliver appends the confirmation and refreshes the transaction
// timestamp, so the time lock counts from the latest approval.
func (h ConfirmHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	msg, record, list, actor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	if err := list.Add(actor); err != nil {
		return nil, err
	}
	if err := h.sigs.Update(db, msg.Kind, msg.Index, list); err != nil {
		return nil, err
	}

	record.Timestamp = now
	if err := h.txs.Update(db, msg.Kind, msg.Index, record); err != nil {
		return nil, err
	}

	return &gavel.DeliverResult{Data: transactionKey(msg.Kind, msg.Index)}, nil
}

func (h ConfirmHandler) validate(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*ConfirmMsg, *Transaction, *ConfirmationList, gavel.Address, error) {
	var msg ConfirmMsg
	if err := gavel.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, err
	}
	actor, _, err := requireOwner(ctx, db, h.auth, h.owners)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	record, err := h.txs.GetTransaction(db, msg.Kind, msg.Index)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if record.Executed {
		return nil, nil, nil, nil, errors.Wrapf(ErrAlreadyExecuted, "%s/%d", msg.Kind, msg.Index)
	}
	list, err := h.sigs.GetConfirmations(db, msg.Kind, msg.Index)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if list.Has(actor) {
		return nil, nil, nil, nil, errors.Wrapf(ErrAlreadyConfirmed, "%s", actor)
	}
	return &msg, record, list, actor, nil
}

// RemoveHandler cancels an under confirmed transaction. There is no ledger
// effect, the record is only marked terminal and leaves the pending set.
type RemoveHandler struct {
	auth   x.Authenticator
	txs    TransactionBucket
	sigs   ConfirmationBucket
	owners OwnerBucket
}

var _ gavel.Handler = RemoveHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h RemoveHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{GasAllocated: terminateCost}, nil
}

// Deliver marks the transaction terminal. The index is retired and never
// assigned again.
func (h RemoveHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	msg, record, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	record.Executed = true
	if err := h.txs.Update(db, msg.Kind, msg.Index, record); err != nil {
		return nil, err
	}

	return &gavel.DeliverResult{Data: transactionKey(msg.Kind, msg.Index)}, nil
}

func (h RemoveHandler) validate(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*RemoveMsg, *Transaction, error) {
	var msg RemoveMsg
	if err := gavel.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	_, set, err := requireOwner(ctx, db, h.auth, h.owners)
	if err != nil {
		return nil, nil, err
	}
	record, err := h.txs.GetTransaction(db, msg.Kind, msg.Index)
	if err != nil {
		return nil, nil, err
	}
	if record.Executed {
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "%s/%d", msg.Kind, msg.Index)
	}
	list, err := h.sigs.GetConfirmations(db, msg.Kind, msg.Index)
	if err != nil {
		return nil, nil, err
	}
	if err := CheckRemovable(len(list.Confirmers), len(set.Owners)); err != nil {
		return nil, nil, err
	}
	return &msg, record, nil
}

// ExecuteHandler applies a sufficiently confirmed transaction once its
// time lock elapsed. Marking the record terminal and applying the side
// effect happen in one atomic step.
type ExecuteHandler struct {
	auth   x.Authenticator
	txs    TransactionBucket
	sigs   ConfirmationBucket
	owners OwnerBucket
	conf   ConfigBucket
	ledger Ledger
}

var _ gavel.Handler = ExecuteHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h ExecuteHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{GasAllocated: terminateCost}, nil
}

// Deliver marks the transaction terminal and invokes the kind specific
// terminal mutator. If the mutator fails all writes are rolled back and
// the transaction remains pending.
func (h ExecuteHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	msg, record, set, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	cdb, ok := db.(gavel.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	cache := cdb.CacheWrap()

	record.Executed = true
	if err := h.txs.Update(cache, msg.Kind, msg.Index, record); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := h.applyTerminal(cache, set, record); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}

	return &gavel.DeliverResult{Data: transactionKey(msg.Kind, msg.Index)}, nil
}

func (h ExecuteHandler) applyTerminal(db gavel.KVStore, set *OwnerSet, record *Transaction) error {
	switch record.Kind {
	case KindIncreaseSupply:
		return h.ledger.IncreaseSupply(db, record.Amount)
	case KindDecreaseSupply:
		return h.ledger.DecreaseSupply(db, record.Amount)
	case KindChangeReceiver:
		return h.ledger.ChangeReceiver(db, record.Target)
	case KindAddOwner:
		if err := set.Add(record.Target); err != nil {
			return err
		}
		return h.owners.Update(db, set)
	case KindRemoveOwner:
		if err := set.Remove(record.Target); err != nil {
			return err
		}
		return h.owners.Update(db, set)
	}
	return errors.Wrapf(errors.ErrInput, "invalid kind %d", record.Kind)
}

func (h ExecuteHandler) validate(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*ExecuteMsg, *Transaction, *OwnerSet, error) {
	var msg ExecuteMsg
	if err := gavel.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}

	set, err := h.owners.GetOwners(db)
	if err != nil {
		return nil, nil, nil, err
	}
	conf, err := h.conf.GetConfig(db)
	if err != nil {
		return nil, nil, nil, err
	}
	actor := x.MainActor(ctx, h.auth)
	isExecutor := len(conf.Executor) != 0 && conf.Executor.Equals(actor)
	if actor == nil || (!set.Has(actor) && !isExecutor) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "neither owner nor executor")
	}

	record, err := h.txs.GetTransaction(db, msg.Kind, msg.Index)
	if err != nil {
		return nil, nil, nil, err
	}
	if record.Executed {
		return nil, nil, nil, errors.Wrapf(ErrAlreadyExecuted, "%s/%d", msg.Kind, msg.Index)
	}

	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if unlocked := record.Timestamp.Add(record.LockTime.Duration()); now < unlocked {
		return nil, nil, nil, errors.Wrapf(ErrTimeLock, "until %s", unlocked)
	}

	list, err := h.sigs.GetConfirmations(db, msg.Kind, msg.Index)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := CheckExecutable(len(list.Confirmers), len(set.Owners)); err != nil {
		return nil, nil, nil, err
	}
	return &msg, record, set, nil
}

// ChangeExecutorHandler replaces the executor address. A single owner can
// do this directly, the change is not collectively governed.
type ChangeExecutorHandler struct {
	auth   x.Authenticator
	owners OwnerBucket
	conf   ConfigBucket
}

var _ gavel.Handler = ChangeExecutorHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h ChangeExecutorHandler) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &gavel.CheckResult{GasAllocated: configCost}, nil
}

// Deliver stores the new executor address.
func (h ChangeExecutorHandler) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	conf, err := h.conf.GetConfig(db)
	if err != nil {
		return nil, err
	}
	conf.Executor = msg.Executor
	if err := h.conf.Update(db, conf); err != nil {
		return nil, err
	}

	return &gavel.DeliverResult{}, nil
}

func (h ChangeExecutorHandler) validate(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*ChangeExecutorMsg, error) {
	var msg ChangeExecutorMsg
	if err := gavel.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if _, _, err := requireOwner(ctx, db, h.auth, h.owners); err != nil {
		return nil, err
	}
	return &msg, nil
}
