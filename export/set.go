package export

import (
	"strconv"
	"sync"

	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/errors"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/wire"
)

// Method implements one exported member. The receiver has already been
// resolved from its handle; args is positioned at the call's remaining
// arguments.
type Method func(recv any, args *wire.Decoder, result *wire.Encoder) error

// Set is the up-front enumeration of exported types for one session. It
// implements dispatch.ExportResolver.
type Set struct {
	mu       sync.RWMutex
	handlers map[string]dispatch.Callback
}

// NewSet creates an empty export set.
func NewSet() *Set {
	return &Set{
		handlers: make(map[string]dispatch.Callback),
	}
}

// Resolve returns the handler for a `TypeName::member` name.
func (s *Set) Resolve(name string) (dispatch.Callback, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[name]
	return h, ok
}

// RegisterType registers every method of an exported type against the
// session's handle table and installs the generated `TypeName::__drop`
// target. Each handler reads the receiver handle as its leading
// argument, per the export-call convention.
func (s *Set) RegisterType(typeName string, table *heap.Table, methods map[string]Method) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for member, m := range methods {
		method := m
		s.handlers[BuildName(typeName, member)] = func(args *wire.Decoder, result *wire.Encoder) error {
			recv, err := readReceiver(table, args)
			if err != nil {
				return err
			}
			return method(recv, args, result)
		}
	}

	s.handlers[DropName(typeName)] = func(args *wire.Decoder, result *wire.Encoder) error {
		raw, err := args.U32()
		if err != nil {
			return err
		}
		// Best-effort: the slot may already be gone.
		table.Remove(heap.ID(raw))
		return nil
	}
}

// RegisterFunc registers a free export under an explicit name, outside
// any type's method table.
func (s *Set) RegisterFunc(name string, fn dispatch.Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = fn
}

// Len returns the number of registered export names.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers)
}

func readReceiver(table *heap.Table, args *wire.Decoder) (any, error) {
	raw, err := args.U32()
	if err != nil {
		return nil, err
	}
	recv, ok := table.Get(heap.ID(raw))
	if !ok {
		return nil, errors.ArgumentMismatch(nil,
			"receiver handle "+strconv.FormatUint(uint64(raw), 10)+" does not name a live object")
	}
	return recv, nil
}
