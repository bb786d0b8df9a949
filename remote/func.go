package remote

import (
	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/wire"
)

// Func stands in for a bare callable owned by the peer runtime,
// addressed by the function id the peer issued for it.
type Func struct {
	d   *dispatch.Dispatcher
	id  uint64
	rel *releaseState
}

// NewFunc wraps a peer-issued callable id. The wrapper participates in
// weak-liveness tracking: when nothing local references it anymore, the
// peer is asked to release the id.
func NewFunc(d *dispatch.Dispatcher, id uint64) *Func {
	f := &Func{d: d, id: id}
	f.rel = track(f, d, releaseFrame(id))
	return f
}

// ID returns the peer-issued function id.
func (f *Func) ID() uint64 {
	return f.id
}

// Call invokes the callable through the reserved callback id. push, if
// non-nil, appends the call's arguments in wire order. The returned
// decoder is positioned at the result payload.
func (f *Func) Call(push func(args *wire.Encoder)) (*wire.Decoder, error) {
	e := wire.NewEvaluate(wire.FnInvokeCallback)
	e.PushU64(f.id)
	if push != nil {
		push(e)
	}
	return f.d.Call(e)
}

// Clone asks the peer to issue a second id for the same callable, so
// the clone and the original can be released independently.
func (f *Func) Clone() (*Func, error) {
	id, err := cloneRef(f.d, f.id)
	if err != nil {
		return nil, err
	}
	return NewFunc(f.d, id), nil
}

// Release queues the drop notification now instead of waiting for the
// liveness tracker. Releasing twice, or releasing and then being
// reclaimed, still notifies the peer once.
func (f *Func) Release() {
	f.rel.release()
}
