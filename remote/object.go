package remote

import (
	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/export"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/wire"
)

// Object stands in for an exported object instance owned by the peer
// runtime. Member calls use the `TypeName::member` export convention
// with the object's handle as the leading argument.
type Object struct {
	d        *dispatch.Dispatcher
	inv      *export.Invoker
	typeName string
	handle   heap.ID
	rel      *releaseState
}

// NewObject wraps a peer-owned instance handle. Reclamation invokes the
// generated `TypeName::__drop` export on the peer.
func NewObject(d *dispatch.Dispatcher, typeName string, handle heap.ID) *Object {
	o := &Object{
		d:        d,
		inv:      export.NewInvoker(d),
		typeName: typeName,
		handle:   handle,
	}

	e := wire.NewExportEvaluate(export.DropName(typeName))
	e.PushU32(uint32(handle))
	o.rel = track(o, d, e.Finalize())
	return o
}

// TypeName returns the exported type's name.
func (o *Object) TypeName() string {
	return o.typeName
}

// Handle returns the peer-issued instance handle.
func (o *Object) Handle() heap.ID {
	return o.handle
}

// Invoke calls a member on the peer-owned instance.
func (o *Object) Invoke(member string, args ...uint32) (*wire.Decoder, error) {
	return o.inv.Invoke(o.typeName, member, o.handle, args...)
}

// Get reads a property as a zero-argument member call.
func (o *Object) Get(prop string) (*wire.Decoder, error) {
	return o.inv.Get(o.typeName, prop, o.handle)
}

// Set writes a property as a one-argument member call.
func (o *Object) Set(prop string, value uint32) (*wire.Decoder, error) {
	return o.inv.Set(o.typeName, prop, o.handle, value)
}

// Clone asks the peer to issue a second handle for the same instance.
// The clone and the original release independently; the instance is
// dropped only when every handle for it has been released.
func (o *Object) Clone() (*Object, error) {
	id, err := cloneRef(o.d, uint64(o.handle))
	if err != nil {
		return nil, err
	}
	return NewObject(o.d, o.typeName, heap.ID(id)), nil
}

// Release queues the `TypeName::__drop` notification now instead of
// waiting for the liveness tracker. At most one notification is ever
// sent per wrapper.
func (o *Object) Release() {
	o.rel.release()
}
