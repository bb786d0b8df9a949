package remote

import (
	"testing"

	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/registry"
	"github.com/hostbridge/hostbridge/wire"
)

// recordingTransport answers every frame with an empty respond and
// keeps what it saw.
type recordingTransport struct {
	seen [][]byte
}

func (tr *recordingTransport) RoundTrip(frame []byte) ([]byte, error) {
	tr.seen = append(tr.seen, frame)
	return wire.NewRespond().Finalize(), nil
}

func newTestDispatcher(tr dispatch.Transport) *dispatch.Dispatcher {
	return dispatch.New(tr, registry.New(), heap.NewTable())
}

func decodeTarget(t *testing.T, frame []byte) (uint32, *wire.Decoder) {
	t.Helper()
	dec, err := wire.NewDecoder(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := dec.ReadKind(); err != nil {
		t.Fatalf("kind: %v", err)
	}
	target, err := dec.U32()
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	return target, dec
}

func TestFuncReleaseQueuedOnce(t *testing.T) {
	tr := &recordingTransport{}
	d := newTestDispatcher(tr)

	f := NewFunc(d, 7)
	f.Release()
	f.Release()
	d.FlushReleases()
	d.FlushReleases()

	if len(tr.seen) != 1 {
		t.Fatalf("transport saw %d frames, want exactly one release", len(tr.seen))
	}
	target, dec := decodeTarget(t, tr.seen[0])
	if target != wire.FnReleaseRef {
		t.Fatalf("target = %#x, want release", target)
	}
	id, err := dec.U64()
	if err != nil || id != 7 {
		t.Fatalf("released id = %d, %v", id, err)
	}
}

func TestFuncCallUsesCallbackID(t *testing.T) {
	tr := &recordingTransport{}
	d := newTestDispatcher(tr)

	f := NewFunc(d, 9)
	if _, err := f.Call(func(args *wire.Encoder) {
		args.PushU32(11)
	}); err != nil {
		t.Fatalf("Call: %v", err)
	}

	target, dec := decodeTarget(t, tr.seen[0])
	if target != wire.FnInvokeCallback {
		t.Fatalf("target = %#x, want callback", target)
	}
	id, err := dec.U64()
	if err != nil || id != 9 {
		t.Fatalf("callable id = %d, %v", id, err)
	}
	arg, err := dec.U32()
	if err != nil || arg != 11 {
		t.Fatalf("arg = %d, %v", arg, err)
	}
}

// cloneReplyTransport answers clone requests with a fixed fresh id and
// everything else with an empty respond.
type cloneReplyTransport struct {
	cloneID uint64
	seen    [][]byte
}

func (tr *cloneReplyTransport) RoundTrip(frame []byte) ([]byte, error) {
	tr.seen = append(tr.seen, frame)
	dec, err := wire.NewDecoder(frame)
	if err != nil {
		return nil, err
	}
	if _, err := dec.ReadKind(); err != nil {
		return nil, err
	}
	target, err := dec.U32()
	if err != nil {
		return nil, err
	}
	if target == wire.FnCloneRef {
		e := wire.NewRespond()
		e.PushU64(tr.cloneID)
		return e.Finalize(), nil
	}
	return wire.NewRespond().Finalize(), nil
}

func TestFuncCloneReleasesIndependently(t *testing.T) {
	tr := &cloneReplyTransport{cloneID: 21}
	d := newTestDispatcher(tr)

	f := NewFunc(d, 7)
	c, err := f.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if c.ID() != 21 {
		t.Fatalf("clone id = %d, want 21", c.ID())
	}

	target, dec := decodeTarget(t, tr.seen[0])
	if target != wire.FnCloneRef {
		t.Fatalf("target = %#x, want clone", target)
	}
	if id, err := dec.U64(); err != nil || id != 7 {
		t.Fatalf("cloned id = %d, %v", id, err)
	}

	// Each owner releases its own id.
	f.Release()
	c.Release()
	d.FlushReleases()

	released := make(map[uint64]bool)
	for _, frame := range tr.seen[1:] {
		target, dec := decodeTarget(t, frame)
		if target != wire.FnReleaseRef {
			t.Fatalf("target = %#x, want release", target)
		}
		id, err := dec.U64()
		if err != nil {
			t.Fatalf("release id: %v", err)
		}
		released[id] = true
	}
	if len(released) != 2 || !released[7] || !released[21] {
		t.Fatalf("released ids %v, want {7, 21}", released)
	}
}

func TestObjectClone(t *testing.T) {
	tr := &cloneReplyTransport{cloneID: 9}
	d := newTestDispatcher(tr)

	o := NewObject(d, "Counter", 3)
	c, err := o.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if c.Handle() != 9 || c.TypeName() != "Counter" {
		t.Fatalf("clone = %s handle %d", c.TypeName(), c.Handle())
	}

	// The clone's release drops its own handle.
	c.Release()
	d.FlushReleases()
	last := tr.seen[len(tr.seen)-1]
	target, dec := decodeTarget(t, last)
	if target != wire.FnInvokeExport {
		t.Fatalf("target = %#x, want export", target)
	}
	if name, err := dec.Str(); err != nil || name != "Counter::__drop" {
		t.Fatalf("name = %q, %v", name, err)
	}
	if handle, err := dec.U32(); err != nil || handle != 9 {
		t.Fatalf("handle = %d, %v", handle, err)
	}
}

func TestValueClone(t *testing.T) {
	tr := &cloneReplyTransport{cloneID: 300}
	d := newTestDispatcher(tr)

	// Interned constants clone to themselves with no traffic.
	u, err := Undefined.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if u != Undefined || len(tr.seen) != 0 {
		t.Fatal("interned clone must be identity without a round trip")
	}

	v := NewValue(d, 200)
	c, err := v.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if c.ID() != 300 || c.Interned() {
		t.Fatalf("clone id = %d interned %v", c.ID(), c.Interned())
	}
}

func TestObjectReleaseUsesDropExport(t *testing.T) {
	tr := &recordingTransport{}
	d := newTestDispatcher(tr)

	o := NewObject(d, "Counter", 3)
	o.Release()
	d.FlushReleases()

	if len(tr.seen) != 1 {
		t.Fatalf("transport saw %d frames, want 1", len(tr.seen))
	}
	target, dec := decodeTarget(t, tr.seen[0])
	if target != wire.FnInvokeExport {
		t.Fatalf("target = %#x, want export", target)
	}
	name, err := dec.Str()
	if err != nil || name != "Counter::__drop" {
		t.Fatalf("name = %q, %v", name, err)
	}
	handle, err := dec.U32()
	if err != nil || handle != 3 {
		t.Fatalf("handle = %d, %v", handle, err)
	}
}

func TestObjectInvokeRoutesThroughExport(t *testing.T) {
	tr := &recordingTransport{}
	d := newTestDispatcher(tr)

	o := NewObject(d, "Counter", 3)
	if _, err := o.Invoke("increment", 5); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	target, dec := decodeTarget(t, tr.seen[0])
	if target != wire.FnInvokeExport {
		t.Fatalf("target = %#x, want export", target)
	}
	name, err := dec.Str()
	if err != nil || name != "Counter::increment" {
		t.Fatalf("name = %q, %v", name, err)
	}
	handle, err := dec.U32()
	if err != nil || handle != 3 {
		t.Fatalf("handle = %d, %v", handle, err)
	}
	arg, err := dec.U32()
	if err != nil || arg != 5 {
		t.Fatalf("arg = %d, %v", arg, err)
	}
}

func TestReleaseNotSentDuringCall(t *testing.T) {
	var d *dispatch.Dispatcher
	var f *Func
	var duringCall int

	tr := &hookTransport{
		fn: func(frame []byte) ([]byte, error) {
			// Release the wrapper while its own call is in flight; the
			// notification must stay queued until the call completes.
			f.Release()
			d.FlushReleases()
			duringCall++
			return wire.NewRespond().Finalize(), nil
		},
	}
	d = newTestDispatcher(tr)
	f = NewFunc(d, 5)

	if _, err := f.Call(nil); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if duringCall != 1 {
		t.Fatalf("transport saw %d frames during the call, want 1", duringCall)
	}

	// With the call finished the queued release goes out.
	tr.fn = func(frame []byte) ([]byte, error) {
		target, _ := decodeTarget(t, frame)
		if target != wire.FnReleaseRef {
			t.Fatalf("target = %#x, want release", target)
		}
		return wire.NewRespond().Finalize(), nil
	}
	d.FlushReleases()
}

type hookTransport struct {
	fn func(frame []byte) ([]byte, error)
}

func (tr *hookTransport) RoundTrip(frame []byte) ([]byte, error) {
	return tr.fn(frame)
}

func TestValueInternedBand(t *testing.T) {
	tr := &recordingTransport{}
	d := newTestDispatcher(tr)

	if v := NewValue(d, 128); v != Undefined {
		t.Fatal("id 128 must canonicalize to Undefined")
	}
	if v := NewValue(d, 131); v != False {
		t.Fatal("id 131 must canonicalize to False")
	}

	Undefined.Release()
	d.FlushReleases()
	if len(tr.seen) != 0 {
		t.Fatal("interned values must never send release")
	}

	v := NewValue(d, 200)
	if v.Interned() {
		t.Fatal("id 200 is not interned")
	}
	v.Release()
	d.FlushReleases()
	if len(tr.seen) != 1 {
		t.Fatalf("transport saw %d frames, want 1", len(tr.seen))
	}
	target, dec := decodeTarget(t, tr.seen[0])
	if target != wire.FnReleaseRef {
		t.Fatalf("target = %#x, want release", target)
	}
	id, err := dec.U64()
	if err != nil || id != 200 {
		t.Fatalf("released id = %d, %v", id, err)
	}
}
