package heap

import (
	"sync"
)

// ID identifies a value owned by one runtime and referenced opaquely by
// the other. Ids from the two runtimes' tables are not interchangeable.
// ID 0 is reserved and always invalid.
type ID uint64

// Table is a reusable-id slot table. It is safe for concurrent use; the
// lock exists because release notifications can arrive from the runtime's
// cleanup goroutine rather than the session's logical thread.
type Table struct {
	mu      sync.Mutex
	entries []slot
	free    []ID
}

type slot struct {
	value any
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make([]slot, 0, 64),
		free:    make([]ID, 0, 16),
	}
}

// Insert stores a value and returns its id, reusing the most recently
// freed id if any, otherwise allocating the next monotonically
// increasing one.
func (t *Table) Insert(value any) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := slot{value: value, valid: true}

	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[id-1] = s
		return id
	}

	t.entries = append(t.entries, s)
	return ID(len(t.entries))
}

// Get retrieves a value by id.
func (t *Table) Get(id ID) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookup(id)
	if !ok {
		return nil, false
	}
	return s.value, true
}

// Has reports whether the id refers to an occupied slot.
func (t *Table) Has(id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.lookup(id)
	return ok
}

// Remove drops the slot, returns its value, and puts the id on the free
// list for immediate reuse.
func (t *Table) Remove(id ID) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookup(id)
	if !ok {
		return nil, false
	}

	value := s.value
	s.valid = false
	s.value = nil
	t.free = append(t.free, id)
	return value, true
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, s := range t.entries {
		if s.valid {
			count++
		}
	}
	return count
}

func (t *Table) lookup(id ID) (*slot, bool) {
	if id == 0 || int(id) > len(t.entries) {
		return nil, false
	}
	s := &t.entries[id-1]
	if !s.valid {
		return nil, false
	}
	return s, true
}
