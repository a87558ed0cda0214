package app

import (
	"fmt"
	"regexp"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_/\-]{4,40}$`).MatchString

// Router allows us to register many handlers with different paths and to
// dispatch each message to the proper handler.
type Router struct {
	routes map[string]gavel.Handler
}

var _ gavel.Registry = Router{}
var _ gavel.Handler = Router{}

// NewRouter creates an empty router.
func NewRouter() Router {
	return Router{
		routes: make(map[string]gavel.Handler),
	}
}

// Handle adds a handler for the given path. Panics on duplicate or invalid
// paths, this is a programming error found during setup.
func (r Router) Handle(path string, h gavel.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("Invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Double registration: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or a handler that
// rejects everything if no match is found.
func (r Router) handler(tx gavel.Tx) gavel.Handler {
	path := gavel.GetPath(tx)
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on the message path.
func (r Router) Check(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.CheckResult, error) {
	return r.handler(tx).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r Router) Deliver(ctx gavel.Context, db gavel.KVStore, tx gavel.Tx) (*gavel.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, db, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ gavel.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(gavel.Context, gavel.KVStore, gavel.Tx) (*gavel.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}

func (h noSuchPathHandler) Deliver(gavel.Context, gavel.KVStore, gavel.Tx) (*gavel.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
