// Package appctx resolves per-worker execution contexts. A context carries
// the capability set available to a running task (cache access and
// database access) and is registered against an explicit worker
// identifier at task start rather than recovered from thread identity.
package appctx

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContext indicates no context is registered for the worker.
	ErrNoContext = errors.New("appctx: no active context for this worker")

	// ErrUnknownMode indicates the resolver was configured with an
	// unrecognized multiprocessing mode.
	ErrUnknownMode = errors.New("appctx: unrecognized multiprocessing mode")

	// ErrNoDatabase indicates a context holds no database handle with the
	// requested id.
	ErrNoDatabase = errors.New("appctx: no database handle with this id")
)

// Cache is the cache capability exposed by a Context.
type Cache interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Database is the database capability exposed by a Context. Handles are
// looked up by integer id scoped to the owning context.
type Database interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Close() error
}

// Context is the capability set available to a running task.
type Context interface {
	Cache() Cache
	Database(id int) (Database, error)
}

// WorkerContext is the thread-pool-worker variant: one instance per
// worker, attached to the resolver at task start and detached at task end.
// It also serves as the single shared context in loop mode.
type WorkerContext struct {
	cache Cache
	dbs   []Database
}

// NewWorkerContext builds a context over a cache handle and zero or more
// database handles, addressed by their position.
func NewWorkerContext(cache Cache, dbs ...Database) *WorkerContext {
	return &WorkerContext{cache: cache, dbs: dbs}
}

var _ Context = (*WorkerContext)(nil)

func (c *WorkerContext) Cache() Cache { return c.cache }

func (c *WorkerContext) Database(id int) (Database, error) {
	if id < 0 || id >= len(c.dbs) || c.dbs[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoDatabase, id)
	}
	return c.dbs[id], nil
}
