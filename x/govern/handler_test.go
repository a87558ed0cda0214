package govern

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/gaveltest"
	"github.com/blocktrust/gavel/store"
	"github.com/blocktrust/gavel/x"
)

// router collects the handlers registered through RegisterRoutes.
type router map[string]gavel.Handler

var _ gavel.Registry = router{}

func (r router) Handle(path string, h gavel.Handler) {
	r[path] = h
}

// ledgerMock tracks terminal mutator calls in memory. DecreaseSupply fails
// once the reserve runs out, without touching any state.
type ledgerMock struct {
	minted   int64
	reserve  int64
	receiver gavel.Address
}

var _ Ledger = (*ledgerMock)(nil)

func (m *ledgerMock) IncreaseSupply(db gavel.KVStore, amount int64) error {
	m.minted += amount
	return nil
}

func (m *ledgerMock) DecreaseSupply(db gavel.KVStore, amount int64) error {
	if m.reserve < amount {
		return pkgerrors.Errorf("burn reserve holds only %d", m.reserve)
	}
	m.reserve -= amount
	return nil
}

func (m *ledgerMock) ChangeReceiver(db gavel.KVStore, target gavel.Address) error {
	m.receiver = target
	return nil
}

type env struct {
	t      *testing.T
	db     gavel.CacheableKVStore
	routes router
	auth   x.CtxAuth
	ledger *ledgerMock
	owners []gavel.Address
	now    time.Time
}

func newEnv(t *testing.T, numOwners int) *env {
	t.Helper()

	db := store.MemStore()
	owners := make([]gavel.Address, numOwners)
	for i := range owners {
		owners[i] = gaveltest.NewAddress()
	}
	require.NoError(t, NewOwnerBucket().Update(db, &OwnerSet{Owners: owners}))

	e := &env{
		t:      t,
		db:     db,
		routes: router{},
		auth:   x.CtxAuth{Key: "auth"},
		ledger: &ledgerMock{reserve: 1000},
		owners: owners,
		now:    time.Unix(1500000000, 0),
	}
	RegisterRoutes(e.routes, e.auth, e.ledger)
	return e
}

func (e *env) ctx(signer gavel.Address) gavel.Context {
	ctx := gavel.WithBlockTime(context.Background(), e.now)
	return e.auth.SetAddresses(ctx, signer)
}

func (e *env) check(signer gavel.Address, msg gavel.Msg) (*gavel.CheckResult, error) {
	h, ok := e.routes[msg.Path()]
	require.True(e.t, ok, "no handler for %s", msg.Path())
	return h.Check(e.ctx(signer), e.db, &gaveltest.Tx{Msg: msg})
}

func (e *env) deliver(signer gavel.Address, msg gavel.Msg) (*gavel.DeliverResult, error) {
	h, ok := e.routes[msg.Path()]
	require.True(e.t, ok, "no handler for %s", msg.Path())
	return h.Deliver(e.ctx(signer), e.db, &gaveltest.Tx{Msg: msg})
}

func TestProposeAssignsIndicesPerKind(t *testing.T) {
	e := newEnv(t, 2)
	a := e.owners[0]

	for i := int64(0); i < 3; i++ {
		res, err := e.deliver(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 100})
		require.NoError(t, err)
		assert.Equal(t, transactionKey(KindIncreaseSupply, i), res.Data)
	}

	// Every kind numbers its transactions independently.
	res, err := e.deliver(a, &ProposeMsg{Kind: KindDecreaseSupply, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, transactionKey(KindDecreaseSupply, 0), res.Data)

	// Proposing counts as the first confirmation.
	list, err := NewConfirmationBucket().GetConfirmations(e.db, KindIncreaseSupply, 0)
	require.NoError(t, err)
	assert.Equal(t, []gavel.Address{a}, list.Confirmers)

	pending, err := NewTransactionBucket().ListPending(e.db, KindIncreaseSupply)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	cres, err := e.check(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, proposeCost, cres.GasAllocated)
}

func TestProposeRequiresOwner(t *testing.T) {
	e := newEnv(t, 2)

	_, err := e.deliver(gaveltest.NewAddress(), &ProposeMsg{Kind: KindIncreaseSupply, Amount: 1})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestConfirm(t *testing.T) {
	e := newEnv(t, 3)
	a, b, c := e.owners[0], e.owners[1], e.owners[2]

	_, err := e.deliver(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 100})
	require.NoError(t, err)

	_, err = e.deliver(b, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)
	list, err := NewConfirmationBucket().GetConfirmations(e.db, KindIncreaseSupply, 0)
	require.NoError(t, err)
	assert.Equal(t, []gavel.Address{a, b}, list.Confirmers)

	_, err = e.deliver(b, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	assert.True(t, ErrAlreadyConfirmed.Is(err))

	_, err = e.deliver(gaveltest.NewAddress(), &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = e.deliver(c, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 5})
	assert.True(t, errors.ErrNotFound.Is(err))

	// A confirmation restarts the time lock.
	e.now = e.now.Add(time.Hour)
	_, err = e.deliver(c, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)
	record, err := NewTransactionBucket().GetTransaction(e.db, KindIncreaseSupply, 0)
	require.NoError(t, err)
	assert.Equal(t, gavel.AsUnixTime(e.now), record.Timestamp)
}

func TestExecuteDecreaseSupply(t *testing.T) {
	e := newEnv(t, 3)
	a, b, c := e.owners[0], e.owners[1], e.owners[2]

	_, err := e.deliver(a, &ProposeMsg{Kind: KindDecreaseSupply, Amount: 100})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindDecreaseSupply, Index: 0})
	require.NoError(t, err)

	// Two confirmations of three owners is a strict majority.
	_, err = e.deliver(c, &ExecuteMsg{Kind: KindDecreaseSupply, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(900), e.ledger.reserve)

	record, err := NewTransactionBucket().GetTransaction(e.db, KindDecreaseSupply, 0)
	require.NoError(t, err)
	assert.True(t, record.Executed)

	pending, err := NewTransactionBucket().ListPending(e.db, KindDecreaseSupply)
	require.NoError(t, err)
	assert.Len(t, pending, 0)

	// The record is terminal now, any mutation is rejected.
	_, err = e.deliver(c, &ConfirmMsg{Kind: KindDecreaseSupply, Index: 0})
	assert.True(t, ErrAlreadyExecuted.Is(err))
	_, err = e.deliver(c, &ExecuteMsg{Kind: KindDecreaseSupply, Index: 0})
	assert.True(t, ErrAlreadyExecuted.Is(err))
	_, err = e.deliver(c, &RemoveMsg{Kind: KindDecreaseSupply, Index: 0})
	assert.True(t, ErrAlreadyExecuted.Is(err))
}

func TestExecuteRequiresStrictMajority(t *testing.T) {
	e := newEnv(t, 4)
	a, b := e.owners[0], e.owners[1]

	_, err := e.deliver(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 100})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)

	// Two of four is a tie, not a majority.
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindIncreaseSupply, Index: 0})
	assert.True(t, ErrInsufficientConfirmations.Is(err))
	assert.Equal(t, int64(0), e.ledger.minted)
}

func TestExecuteRespectsTimeLock(t *testing.T) {
	e := newEnv(t, 5)
	a := e.owners[0]
	newbie := gaveltest.NewAddress()

	_, err := e.deliver(a, &ProposeMsg{Kind: KindAddOwner, Target: newbie, LockTime: 3600})
	require.NoError(t, err)

	_, err = e.deliver(a, &ExecuteMsg{Kind: KindAddOwner, Index: 0})
	assert.True(t, ErrTimeLock.Is(err))

	// One of five is a strict minority, removal is fine.
	_, err = e.deliver(a, &RemoveMsg{Kind: KindAddOwner, Index: 0})
	require.NoError(t, err)

	record, err := NewTransactionBucket().GetTransaction(e.db, KindAddOwner, 0)
	require.NoError(t, err)
	assert.True(t, record.Executed)
	pending, err := NewTransactionBucket().ListPending(e.db, KindAddOwner)
	require.NoError(t, err)
	assert.Len(t, pending, 0)

	set, err := NewOwnerBucket().GetOwners(e.db)
	require.NoError(t, err)
	assert.Len(t, set.Owners, 5)

	// The retired index is never assigned again.
	res, err := e.deliver(a, &ProposeMsg{Kind: KindAddOwner, Target: newbie, LockTime: 3600})
	require.NoError(t, err)
	assert.Equal(t, transactionKey(KindAddOwner, 1), res.Data)
}

func TestConfirmRestartsTimeLock(t *testing.T) {
	e := newEnv(t, 3)
	a, b := e.owners[0], e.owners[1]
	newbie := gaveltest.NewAddress()

	_, err := e.deliver(a, &ProposeMsg{Kind: KindAddOwner, Target: newbie, LockTime: 3600})
	require.NoError(t, err)

	// The late confirmation pushes the unlock moment forward.
	e.now = e.now.Add(3000 * time.Second)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindAddOwner, Index: 0})
	require.NoError(t, err)

	e.now = e.now.Add(700 * time.Second)
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindAddOwner, Index: 0})
	assert.True(t, ErrTimeLock.Is(err))

	e.now = e.now.Add(2900 * time.Second)
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindAddOwner, Index: 0})
	require.NoError(t, err)

	set, err := NewOwnerBucket().GetOwners(e.db)
	require.NoError(t, err)
	assert.Len(t, set.Owners, 4)
	assert.True(t, set.Has(newbie))
}

func TestExecutorCanExecute(t *testing.T) {
	e := newEnv(t, 2)
	a, b := e.owners[0], e.owners[1]
	executor := gaveltest.NewAddress()

	// Only an owner can appoint the executor.
	_, err := e.deliver(executor, &ChangeExecutorMsg{Executor: executor})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = e.deliver(a, &ChangeExecutorMsg{Executor: executor})
	require.NoError(t, err)

	_, err = e.deliver(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 100})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)

	// A stranger still cannot execute.
	_, err = e.deliver(gaveltest.NewAddress(), &ExecuteMsg{Kind: KindIncreaseSupply, Index: 0})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = e.deliver(executor, &ExecuteMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(100), e.ledger.minted)
}

func TestExecuteRollsBackOnLedgerFailure(t *testing.T) {
	e := newEnv(t, 3)
	a, b := e.owners[0], e.owners[1]
	e.ledger.reserve = 50

	_, err := e.deliver(a, &ProposeMsg{Kind: KindDecreaseSupply, Amount: 100})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindDecreaseSupply, Index: 0})
	require.NoError(t, err)

	_, err = e.deliver(a, &ExecuteMsg{Kind: KindDecreaseSupply, Index: 0})
	require.Error(t, err)
	assert.Equal(t, int64(50), e.ledger.reserve)

	// The failed execution left no trace, the transaction is still
	// pending and can be executed once the reserve is funded.
	record, err := NewTransactionBucket().GetTransaction(e.db, KindDecreaseSupply, 0)
	require.NoError(t, err)
	assert.False(t, record.Executed)
	pending, err := NewTransactionBucket().ListPending(e.db, KindDecreaseSupply)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	e.ledger.reserve = 150
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindDecreaseSupply, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(50), e.ledger.reserve)
}

func TestRemoveBlockedByMajority(t *testing.T) {
	e := newEnv(t, 3)
	a, b := e.owners[0], e.owners[1]

	_, err := e.deliver(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 100})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)

	_, err = e.deliver(a, &RemoveMsg{Kind: KindIncreaseSupply, Index: 0})
	assert.True(t, ErrTooManyConfirmations.Is(err))
}

func TestRemoveLastOwnerFails(t *testing.T) {
	e := newEnv(t, 1)
	a := e.owners[0]

	_, err := e.deliver(a, &ProposeMsg{Kind: KindRemoveOwner, Target: a})
	require.NoError(t, err)

	// A single confirmation of a single owner is enough to execute, but
	// the owner set refuses to shrink to zero and the whole call rolls
	// back.
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindRemoveOwner, Index: 0})
	assert.True(t, ErrLastOwner.Is(err))

	record, err := NewTransactionBucket().GetTransaction(e.db, KindRemoveOwner, 0)
	require.NoError(t, err)
	assert.False(t, record.Executed)
	set, err := NewOwnerBucket().GetOwners(e.db)
	require.NoError(t, err)
	assert.Len(t, set.Owners, 1)
}

func TestConfirmationsOutliveOwnerRemoval(t *testing.T) {
	e := newEnv(t, 3)
	a, b, c := e.owners[0], e.owners[1], e.owners[2]

	// Gather all three confirmations on a mint.
	_, err := e.deliver(a, &ProposeMsg{Kind: KindIncreaseSupply, Amount: 100})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)
	_, err = e.deliver(c, &ConfirmMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)

	// Shrink the owner set through governance.
	_, err = e.deliver(a, &ProposeMsg{Kind: KindRemoveOwner, Target: c})
	require.NoError(t, err)
	_, err = e.deliver(b, &ConfirmMsg{Kind: KindRemoveOwner, Index: 0})
	require.NoError(t, err)
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindRemoveOwner, Index: 0})
	require.NoError(t, err)
	set, err := NewOwnerBucket().GetOwners(e.db)
	require.NoError(t, err)
	assert.Len(t, set.Owners, 2)

	// Three confirmations of two owners, more confirmers than owners
	// left, the mint is still executable.
	_, err = e.deliver(a, &ExecuteMsg{Kind: KindIncreaseSupply, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(100), e.ledger.minted)
}
