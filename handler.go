package gavel

import (
	"encoding/json"
)

// CheckResult captures any metadata from a dry-run validation of a
// transaction.
type CheckResult struct {
	// Data is arbitrary binary data returned by the handler.
	Data []byte
	// Log is a human readable note.
	Log string
	// GasAllocated is an estimate of the cost of this call.
	GasAllocated int64
}

// DeliverResult captures any non-error metadata from executing a
// transaction.
type DeliverResult struct {
	// Data is arbitrary binary data returned by the handler, typically
	// the key of a created record.
	Data []byte
	// Log is a human readable note.
	Log string
}

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication or savepoints, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	// Handle assigns the given handler to handle processing of every
	// message of the provided path.
	Handle(path string, h Handler)
}

// Options are the app options. Each extension can look up its key and parse
// the raw JSON as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key and parses the JSON
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from genesis
// file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
