package appctx

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// Mode selects how the resolver maps a worker identifier to a context.
type Mode int

const (
	// ModeThread serves thread-per-request deployments: each worker
	// registers its own context and lookups go through the registry.
	ModeThread Mode = iota

	// ModeLoop serves event-loop deployments: every lookup resolves to one
	// shared context.
	ModeLoop
)

func (m Mode) String() string {
	switch m {
	case ModeThread:
		return "thread"
	case ModeLoop:
		return "loop"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a configuration value into a Mode. "epoll" is accepted
// as a legacy alias for "loop".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "thread":
		return ModeThread, nil
	case "loop", "epoll":
		return ModeLoop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Resolver maps worker identifiers to execution contexts. Attach and
// Detach bracket a task's lifetime; Context resolves according to the
// configured mode and reports an explicit error when no context is active.
// All methods are safe for concurrent use.
type Resolver struct {
	mode     Mode
	registry *xsync.Map[uint64, Context]
	loop     Context
}

// NewResolver creates a Resolver for the given mode with an empty registry.
func NewResolver(mode Mode) *Resolver {
	return &Resolver{
		mode:     mode,
		registry: xsync.NewMap[uint64, Context](),
	}
}

// Mode returns the resolver's configured mode.
func (r *Resolver) Mode() Mode { return r.mode }

// SetLoopContext installs the shared context served in ModeLoop. It must
// be called before any lookup in that mode.
func (r *Resolver) SetLoopContext(ctx Context) { r.loop = ctx }

// Attach registers the context for a worker. Call at task start.
func (r *Resolver) Attach(id uint64, ctx Context) {
	r.registry.Store(id, ctx)
}

// Detach clears the worker's registration. Call at task end.
func (r *Resolver) Detach(id uint64) {
	r.registry.Delete(id)
}

// Context resolves the active context for a worker.
func (r *Resolver) Context(id uint64) (Context, error) {
	switch r.mode {
	case ModeThread:
		ctx, ok := r.registry.Load(id)
		if !ok {
			return nil, fmt.Errorf("%w: worker %d", ErrNoContext, id)
		}
		return ctx, nil
	case ModeLoop:
		if r.loop == nil {
			return nil, fmt.Errorf("%w: no loop context installed", ErrNoContext)
		}
		return r.loop, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, r.mode)
	}
}

// Cache resolves the worker's cache handle.
func (r *Resolver) Cache(id uint64) (Cache, error) {
	ctx, err := r.Context(id)
	if err != nil {
		return nil, err
	}
	return ctx.Cache(), nil
}

// Database resolves database handle db scoped to the worker's context.
func (r *Resolver) Database(id uint64, db int) (Database, error) {
	ctx, err := r.Context(id)
	if err != nil {
		return nil, err
	}
	return ctx.Database(db)
}
