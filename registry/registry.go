package registry

import (
	"sync"

	"github.com/hostbridge/hostbridge/errors"
	"github.com/hostbridge/hostbridge/wire"
)

// Entry is the (decode-args, encode-result) procedure pair for one
// exposed function. DecodeArgs reads the call's arguments off the wire;
// Invoke computes the result from those arguments and writes it.
type Entry struct {
	// Name is a diagnostic label; it never appears on the wire.
	Name string

	// DecodeArgs reads the function's arguments in wire order.
	DecodeArgs func(args *wire.Decoder) ([]any, error)

	// Invoke computes the result and encodes it into the reply.
	Invoke func(args []any, result *wire.Encoder) error
}

// Registry holds the ordered, 0-indexed function table for one bridge
// session.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
	bound   bool
	waiters []func()
}

// New creates an unbound registry.
func New() *Registry {
	return &Registry{}
}

// Bind installs the function table, replacing any previous one, and runs
// every callback queued by WhenBound in FIFO order.
func (r *Registry) Bind(entries []Entry) {
	r.mu.Lock()
	r.entries = entries
	r.bound = true
	waiters := r.waiters
	r.waiters = nil
	r.mu.Unlock()

	for _, fn := range waiters {
		fn()
	}
}

// Lookup resolves a function id. An id outside the registered range is an
// unresolved-function error, fatal to the current call chain.
func (r *Registry) Lookup(id uint32) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.bound {
		return Entry{}, errors.NotBound()
	}
	if int(id) >= len(r.entries) {
		return Entry{}, errors.UnresolvedFunction(id, len(r.entries))
	}
	return r.entries[id], nil
}

// WhenBound runs fn immediately if the table is bound, otherwise queues
// it until Bind delivers the table.
func (r *Registry) WhenBound(fn func()) {
	r.mu.Lock()
	if r.bound {
		r.mu.Unlock()
		fn()
		return
	}
	r.waiters = append(r.waiters, fn)
	r.mu.Unlock()
}

// Bound reports whether a table has been installed.
func (r *Registry) Bound() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
