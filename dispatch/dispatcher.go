package dispatch

import (
	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/errors"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/registry"
	"github.com/hostbridge/hostbridge/wire"
)

// Transport carries one encoded frame to the peer runtime and blocks for
// the peer's reply frame. An empty reply means "no further action". One
// frame is in flight per call; the transport is assumed reliable and
// synchronous.
type Transport interface {
	RoundTrip(frame []byte) ([]byte, error)
}

// Callback is a callable stored in the heap table and invoked by the
// peer through the reserved callback id.
type Callback func(args *wire.Decoder, result *wire.Encoder) error

// ExportResolver resolves `TypeName::member` export names to handlers.
// The handler reads the receiver handle and trailing arguments itself.
type ExportResolver interface {
	Resolve(name string) (Callback, bool)
}

// Dispatcher owns one side of a bridge session: the transport to the
// peer, the local function registry, and the local handle table. All
// calls run on a single logical thread; reentrancy is the only form of
// concurrency.
type Dispatcher struct {
	transport Transport
	funcs     *registry.Registry
	table     *heap.Table
	exports   ExportResolver

	// depth and exchanges are touched only on the session's logical
	// thread. The release queue has its own lock because cleanup
	// callbacks arrive from the runtime's reclamation goroutine.
	depth     int
	exchanges uint64

	releases releaseQueue
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExports installs the resolver for inbound export calls.
func WithExports(r ExportResolver) Option {
	return func(d *Dispatcher) {
		d.exports = r
	}
}

// New creates a dispatcher for one bridge session.
func New(t Transport, funcs *registry.Registry, table *heap.Table, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: t,
		funcs:     funcs,
		table:     table,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Heap returns the session's handle table.
func (d *Dispatcher) Heap() *heap.Table {
	return d.table
}

// Funcs returns the session's function registry.
func (d *Dispatcher) Funcs() *registry.Registry {
	return d.funcs
}

// Exchanges counts transport exchanges: each frame this side sent to
// initiate a hop plus each frame the peer addressed back. One plain call
// costs two (the call and its respond); every nested call inside a
// reentrant chain adds one more.
func (d *Dispatcher) Exchanges() uint64 {
	return d.exchanges
}

// Call sends an Evaluate frame and blocks until a terminating Respond
// arrives, executing any nested Evaluate requests the peer issues while
// the call is pending. The returned decoder is positioned at the reply
// payload; a nil decoder with nil error means the transport had no reply
// ("no further action").
func (d *Dispatcher) Call(e *wire.Encoder) (*wire.Decoder, error) {
	d.depth++
	defer func() { d.depth-- }()

	if d.depth == 1 {
		d.flushReleases()
	}
	return d.exchange(e.Finalize())
}

// exchange runs one blocking call chain to completion.
func (d *Dispatcher) exchange(frame []byte) (*wire.Decoder, error) {
	d.exchanges++

	for {
		reply, err := d.transport.RoundTrip(frame)
		if err != nil {
			return nil, errors.TransportFailure(err)
		}
		if len(reply) == 0 {
			return nil, nil
		}
		d.exchanges++

		dec, err := wire.NewDecoder(reply)
		if err != nil {
			return nil, err
		}
		kind, err := dec.ReadKind()
		if err != nil {
			return nil, err
		}

		if kind == wire.KindRespond {
			return dec, nil
		}

		// The peer needs a local function executed before the original
		// call can resume.
		Logger().Debug("nested evaluate while call pending", zap.Int("depth", d.depth))
		resp, err := d.evaluate(dec)
		if err != nil {
			return nil, err
		}
		frame = resp.Finalize()
	}
}

// HandleFrame executes one peer-initiated Evaluate and returns the
// encoded Respond. A resolution or execution failure returns a nil frame
// with the error; no response frame is produced for it.
func (d *Dispatcher) HandleFrame(frame []byte) ([]byte, error) {
	d.depth++
	defer func() { d.depth-- }()

	d.exchanges++

	dec, err := wire.NewDecoder(frame)
	if err != nil {
		return nil, err
	}
	kind, err := dec.ReadKind()
	if err != nil {
		return nil, err
	}
	if kind != wire.KindEvaluate {
		return nil, errors.Malformed("respond frame received with no call in flight")
	}

	resp, err := d.evaluate(dec)
	if err != nil {
		return nil, err
	}
	return resp.Finalize(), nil
}
