package export

import (
	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/wire"
)

// Invoker routes member calls on peer-owned objects through the
// dispatcher's outbound path.
type Invoker struct {
	d *dispatch.Dispatcher
}

// NewInvoker creates an invoker bound to one session's dispatcher.
func NewInvoker(d *dispatch.Dispatcher) *Invoker {
	return &Invoker{d: d}
}

// Invoke calls `TypeName::member` on the peer, prepending the receiver
// handle to the positional arguments.
func (i *Invoker) Invoke(typeName, member string, recv heap.ID, args ...uint32) (*wire.Decoder, error) {
	e := wire.NewExportEvaluate(BuildName(typeName, member))
	e.PushU32(uint32(recv))
	for _, a := range args {
		e.PushU32(a)
	}
	return i.d.Call(e)
}

// Get reads a property: normalized to a zero-argument member call.
func (i *Invoker) Get(typeName, prop string, recv heap.ID) (*wire.Decoder, error) {
	return i.Invoke(typeName, prop, recv)
}

// Set writes a property: normalized to a one-argument member call.
func (i *Invoker) Set(typeName, prop string, recv heap.ID, value uint32) (*wire.Decoder, error) {
	return i.Invoke(typeName, prop, recv, value)
}
