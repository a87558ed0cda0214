package app

import (
	"github.com/blocktrust/gavel"
)

// Chain holds a chain of decorators, purely as definitions. Until a
// handler is attached it is unusable.
type Chain struct {
	chain []gavel.Decorator
}

// ChainDecorators takes a chain of decorators, sorted from first to last
// in execution order.
func ChainDecorators(chain ...gavel.Decorator) Chain {
	return Chain{chain: chain}
}

// Chain appends more decorators to the end of the chain.
func (c Chain) Chain(chain ...gavel.Decorator) Chain {
	return Chain{chain: append(c.chain, chain...)}
}

// WithHandler attaches the business logic at the end of the chain and
// returns the complete Handler.
func (c Chain) WithHandler(h gavel.Handler) gavel.Handler {
	for i := len(c.chain) - 1; i >= 0; i-- {
		h = cascade{d: c.chain[i], next: h}
	}
	return h
}

// cascade connects one decorator to the rest of the stack.
type cascade struct {
	d    gavel.Decorator
	next gavel.Handler
}

var _ gavel.Handler = cascade{}

func (c cascade) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	return c.d.Check(ctx, db, tx, c.next)
}

func (c cascade) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	return c.d.Deliver(ctx, db, tx, c.next)
}
