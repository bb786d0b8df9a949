package remote

import "github.com/hostbridge/hostbridge/dispatch"

// The peer's value table reserves a low id band for well-known
// constants. Ids below the band start are never issued; ids inside the
// band are interned and never released.
const (
	valueBandStart = 128

	idUndefined = valueBandStart
	idNull      = valueBandStart + 1
	idTrue      = valueBandStart + 2
	idFalse     = valueBandStart + 3

	firstTrackedID = valueBandStart + 4
)

// Value is an opaque reference to a slot in the peer runtime's value
// table. Unlike Func and Object it carries no calling convention; it
// exists so values can be threaded through calls without decoding them
// locally.
type Value struct {
	d   *dispatch.Dispatcher
	id  uint64
	rel *releaseState
}

// Interned constants. These reference peer-interned slots, so they are
// never tracked and Release on them is a no-op.
var (
	Undefined = &Value{id: idUndefined}
	Null      = &Value{id: idNull}
	True      = &Value{id: idTrue}
	False     = &Value{id: idFalse}
)

// NewValue wraps a peer-issued value id. Ids inside the interned band
// are canonicalized to the shared constants and left untracked.
func NewValue(d *dispatch.Dispatcher, id uint64) *Value {
	switch id {
	case idUndefined:
		return Undefined
	case idNull:
		return Null
	case idTrue:
		return True
	case idFalse:
		return False
	}
	v := &Value{d: d, id: id}
	v.rel = track(v, d, releaseFrame(id))
	return v
}

// Clone asks the peer to issue a second id for the same value slot, so
// the clone and the original release independently. Interned constants
// clone to themselves without a round trip.
func (v *Value) Clone() (*Value, error) {
	if v.Interned() {
		return v, nil
	}
	id, err := cloneRef(v.d, v.id)
	if err != nil {
		return nil, err
	}
	return NewValue(v.d, id), nil
}

// ID returns the peer-issued value id.
func (v *Value) ID() uint64 {
	return v.id
}

// Interned reports whether the value is one of the peer's interned
// constants.
func (v *Value) Interned() bool {
	return v.id < firstTrackedID
}

// Release queues the drop notification for tracked values and does
// nothing for interned ones.
func (v *Value) Release() {
	if v.rel != nil {
		v.rel.release()
	}
}
