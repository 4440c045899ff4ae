package allure

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
)

// Handle is a mutually exclusive cell holding at most one test context. A
// cooperative execution carries its handle through a context.Context scope;
// the same handle doubles as the process-wide fallback so helpers invoked
// from detached goroutines that cannot see the scope still resolve it.
type Handle struct {
	mu sync.Mutex
	tc *TestContext
}

// NewHandle creates a handle owning tc.
func NewHandle(tc *TestContext) *Handle {
	return &Handle{tc: tc}
}

// take removes and returns the held context, leaving the handle empty.
func (h *Handle) take() *TestContext {
	h.mu.Lock()
	defer h.mu.Unlock()
	tc := h.tc
	h.tc = nil
	return tc
}

// mutate runs fn against the held context without removing it. The lock is
// released before mutate returns; it is never held across a blocking call.
func (h *Handle) mutate(fn func(*TestContext)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tc == nil {
		return false
	}
	fn(h.tc)
	return true
}

type handleKey struct{}

// WithHandle binds h into ctx, making it the task-affine slot for every
// operation that receives the returned context.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// HandleFromContext returns the handle carried by ctx, if any.
func HandleFromContext(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(handleKey{}).(*Handle)
	return h, ok && h != nil
}

// goroutineID parses the current goroutine's id from its stack header.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Registry resolves the currently executing test's context. Every
// operation applies the same resolution order: the context-carried handle
// when a scope is active, then the calling goroutine's execution slot,
// then the process-wide scope fallback. Operations against an empty
// registry are silent no-ops so code outside a tracked test never crashes
// the process.
type Registry struct {
	mu    sync.Mutex
	slots map[uint64]*Handle // synchronous executions, keyed by goroutine id
	scope *Handle            // fallback for cooperative executions
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[uint64]*Handle)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry backing the ambient
// helper functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Install makes tc the current context for the calling goroutine's
// execution slot, replacing any previous occupant. Slots on other
// goroutines are untouched, so concurrently running tests never displace
// each other.
func (r *Registry) Install(tc *TestContext) {
	gid := goroutineID()
	r.mu.Lock()
	r.slots[gid] = NewHandle(tc)
	r.mu.Unlock()
}

// BeginScope registers h as the process-wide fallback for a cooperative
// execution. The returned func clears the fallback and must be called when
// the scope ends; a fallback replaced by a newer scope is left alone.
func (r *Registry) BeginScope(h *Handle) func() {
	r.mu.Lock()
	r.scope = h
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		if r.scope == h {
			r.scope = nil
		}
		r.mu.Unlock()
	}
}

// Retrieve removes and returns the current context, or nil when none is
// installed. The removal makes finalization callable at most once per
// context through the public surface. A drained goroutine slot is deleted
// so the map does not accumulate entries for finished goroutines.
func (r *Registry) Retrieve(ctx context.Context) *TestContext {
	if ctx != nil {
		if h, ok := HandleFromContext(ctx); ok {
			if tc := h.take(); tc != nil {
				return tc
			}
		}
	}

	gid := goroutineID()
	r.mu.Lock()
	slot := r.slots[gid]
	scope := r.scope
	r.mu.Unlock()

	if slot != nil {
		tc := slot.take()
		r.mu.Lock()
		if r.slots[gid] == slot {
			delete(r.slots, gid)
		}
		r.mu.Unlock()
		if tc != nil {
			return tc
		}
	}
	if scope != nil {
		if tc := scope.take(); tc != nil {
			return tc
		}
	}
	return nil
}

// Mutate runs fn against the current context in place, without removing
// it. It reports whether a context was found.
func (r *Registry) Mutate(ctx context.Context, fn func(*TestContext)) bool {
	if ctx != nil {
		if h, ok := HandleFromContext(ctx); ok && h.mutate(fn) {
			return true
		}
	}

	r.mu.Lock()
	slot := r.slots[goroutineID()]
	scope := r.scope
	r.mu.Unlock()

	if slot != nil && slot.mutate(fn) {
		return true
	}
	if scope != nil && scope.mutate(fn) {
		return true
	}
	return false
}

// mutate applies fn to the default registry's current context, ignoring
// the result. This is the backing for every ambient helper.
func mutate(fn func(*TestContext)) {
	defaultRegistry.Mutate(nil, fn)
}
