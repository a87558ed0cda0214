/*
Package app wires the extensions into one dispatching application.

The Dispatcher is the host facing surface. It serializes all calls,
defaults the call time, wraps every call in a savepoint and routes the
message to the proper extension handler.
*/
package app

import (
	"sync"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/x"
	"github.com/blocktrust/gavel/x/govern"
	"github.com/blocktrust/gavel/x/token"
	"github.com/blocktrust/gavel/x/utils"
)

// Auth is the authenticator of the application stack. The host establishes
// the caller identity and stamps the addresses into the context through
// it.
var Auth = x.CtxAuth{Key: "gavel/auth"}

// Stack builds the full message processing stack, the savepoint decorator
// in front of a router with the governance and token handlers.
func Stack() gavel.Handler {
	control := token.NewController()
	r := NewRouter()
	govern.RegisterRoutes(r, Auth, control)
	token.RegisterRoutes(r, Auth, control)
	return ChainDecorators(
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)
}

// Dispatcher applies transactions against the application state. Calls are
// serialized, each one runs to completion against a consistent snapshot of
// state and time before the next one starts.
type Dispatcher struct {
	mu      sync.Mutex
	db      gavel.CacheableKVStore
	handler gavel.Handler
	logger  log.Logger
}

// NewDispatcher creates a dispatcher around the given store and handler
// stack.
func NewDispatcher(db gavel.CacheableKVStore, handler gavel.Handler, logger log.Logger) *Dispatcher {
	if logger == nil {
		logger = gavel.DefaultLogger
	}
	return &Dispatcher{
		db:      db,
		handler: handler,
		logger:  logger,
	}
}

// InitGenesis applies all initializers on a fresh state. Either the whole
// genesis is written or nothing.
func (d *Dispatcher) InitGenesis(opts gavel.Options, inits ...gavel.Initializer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cache := d.db.CacheWrap()
	for _, init := range inits {
		if err := init.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return err
		}
	}
	return cache.Write()
}

// Check runs the dry run validation path of a transaction. State written
// during check is kept in the dispatcher store.
func (d *Dispatcher) Check(ctx gavel.Context, tx gavel.Tx) (*gavel.CheckResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx = d.prepare(ctx)
	res, err := d.handler.Check(ctx, d.db, tx)
	if err != nil {
		d.logger.Debug("check failed", "path", gavel.GetPath(tx), "err", err)
	}
	return res, err
}

// Deliver executes a transaction. A failed call leaves no trace in the
// state, the caller must correct the condition and resubmit.
func (d *Dispatcher) Deliver(ctx gavel.Context, tx gavel.Tx) (*gavel.DeliverResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx = d.prepare(ctx)
	res, err := d.handler.Deliver(ctx, d.db, tx)
	if err != nil {
		d.logger.Info("deliver failed", "path", gavel.GetPath(tx), "err", err)
		return nil, err
	}
	d.logger.Debug("delivered", "path", gavel.GetPath(tx))
	return res, nil
}

// prepare completes the context for one call. The time snapshot is taken
// here unless the host already fixed one.
func (d *Dispatcher) prepare(ctx gavel.Context) gavel.Context {
	if _, ok := gavel.BlockTime(ctx); !ok {
		ctx = gavel.WithBlockTime(ctx, time.Now())
	}
	return gavel.WithLogger(ctx, d.logger)
}
