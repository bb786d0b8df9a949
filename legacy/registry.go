package legacy

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/errors"
)

// Native is one host function callable through the legacy protocol.
type Native func(args []Value) (Value, error)

// Registry maps legacy function ids to natives. Unlike the binary
// protocol's registry, ids here are assigned by the host ahead of time
// and the script side is expected to know them.
type Registry struct {
	mu      sync.RWMutex
	natives map[uint32]Native
}

// NewRegistry creates an empty legacy registry.
func NewRegistry() *Registry {
	return &Registry{natives: make(map[uint32]Native)}
}

// Register installs a native under id, replacing any previous one.
func (r *Registry) Register(id uint32, fn Native) {
	r.mu.Lock()
	r.natives[id] = fn
	r.mu.Unlock()
}

// Len returns the number of registered natives.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.natives)
}

// HandleMessage executes one Evaluate and returns its Respond.
func (r *Registry) HandleMessage(m *Message) (*Message, error) {
	if m.Kind != KindEvaluate {
		return nil, errors.Malformed("respond message received with no call in flight")
	}

	r.mu.RLock()
	fn, ok := r.natives[m.FnID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.UnresolvedFunction(m.FnID, r.Len())
	}

	result, err := fn(m.Args)
	if err != nil {
		return nil, err
	}
	return &Message{Kind: KindRespond, Response: mustRaw(result)}, nil
}

// HandleHeader is HandleMessage over the base64 header encoding. The
// returned string is the encoded Respond, or "" when the call failed.
func (r *Registry) HandleHeader(encoded string) (string, error) {
	m, err := DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	resp, err := r.HandleMessage(m)
	if err != nil {
		return "", err
	}
	return resp.EncodeHeader()
}

func mustRaw(v Value) []byte {
	raw, _ := v.MarshalJSON()
	return raw
}

// Demo native ids. These are the calls the legacy protocol survives
// for; everything richer goes through the binary protocol.
const (
	FnLog         uint32 = 0
	FnAlert       uint32 = 1
	FnSetText     uint32 = 2
	FnAddListener uint32 = 3
)

// UI is the surface the demo natives mutate. Implementations range from
// a real embedded page to the terminal demo in cmd/bridgedemo.
type UI interface {
	Alert(message string)
	SetText(target, text string)
	AddEventListener(target, event string, callbackID uint64)
}

// NewDemoRegistry builds a registry with the four demo natives bound to
// log and ui.
func NewDemoRegistry(log *zap.Logger, ui UI) *Registry {
	r := NewRegistry()

	r.Register(FnLog, func(args []Value) (Value, error) {
		for _, a := range args {
			log.Info("script log", zap.String("message", a.AsString()))
		}
		return Null(), nil
	})
	r.Register(FnAlert, func(args []Value) (Value, error) {
		if len(args) < 1 {
			return Null(), errors.ArgumentMismatch([]string{"alert", "message"}, "missing argument")
		}
		ui.Alert(args[0].AsString())
		return Null(), nil
	})
	r.Register(FnSetText, func(args []Value) (Value, error) {
		if len(args) < 2 {
			return Null(), errors.ArgumentMismatch([]string{"set_text"}, "want target and text")
		}
		ui.SetText(args[0].AsString(), args[1].AsString())
		return Null(), nil
	})
	r.Register(FnAddListener, func(args []Value) (Value, error) {
		if len(args) < 3 {
			return Null(), errors.ArgumentMismatch([]string{"add_event_listener"}, "want target, event and callback")
		}
		id, ok := args[2].AsFunc()
		if !ok {
			return Null(), errors.ArgumentMismatch([]string{"add_event_listener", "callback"}, "value is not callable")
		}
		ui.AddEventListener(args[0].AsString(), args[1].AsString(), id)
		return Null(), nil
	})

	return r
}
