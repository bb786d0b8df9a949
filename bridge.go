package hostbridge

import (
	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/config"
	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/export"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/registry"
	"github.com/hostbridge/hostbridge/transport"
	"github.com/hostbridge/hostbridge/wire"
)

// Transport carries frames to the peer runtime.
type Transport = dispatch.Transport

// Callback is a callable stored in the heap table and invocable by the
// peer.
type Callback = dispatch.Callback

// Session bundles one side of a bridge: the handle table, the function
// registry, the export set, and the dispatcher tying them to a
// transport.
type Session struct {
	Funcs   *registry.Registry
	Heap    *heap.Table
	Exports *export.Set

	dispatcher *dispatch.Dispatcher
	cfg        config.Session
}

// NewSession wires a session over t. cfg should come from
// config.Default, possibly adjusted; it is not validated here so the
// facade stays infallible, call cfg.Validate at the boundary that
// accepted it.
func NewSession(t Transport, cfg config.Session) *Session {
	s := &Session{
		Funcs:   registry.New(),
		Heap:    heap.NewTable(),
		Exports: export.NewSet(),
		cfg:     cfg,
	}
	s.dispatcher = dispatch.New(t, s.Funcs, s.Heap, dispatch.WithExports(s.Exports))
	return s
}

// Dispatcher exposes the underlying dispatcher for packages that build
// on the call path, such as remote wrappers and export invokers.
func (s *Session) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Config returns the session configuration.
func (s *Session) Config() config.Session {
	return s.cfg
}

// Call sends an Evaluate and blocks for the terminating Respond,
// running nested peer requests in between.
func (s *Session) Call(e *wire.Encoder) (*wire.Decoder, error) {
	return s.dispatcher.Call(e)
}

// HandleFrame executes one peer-initiated Evaluate and returns the
// encoded Respond.
func (s *Session) HandleFrame(frame []byte) ([]byte, error) {
	return s.dispatcher.HandleFrame(frame)
}

// SetLogger installs l as the logger for every bridge package.
func SetLogger(l *zap.Logger) {
	dispatch.SetLogger(l)
	transport.SetLogger(l)
}
