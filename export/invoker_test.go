package export

import (
	"testing"

	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/registry"
	"github.com/hostbridge/hostbridge/wire"
)

// echoTransport decodes the export call it receives and responds with
// the receiver handle plus the sum of trailing args.
type echoTransport struct {
	lastName string
	lastArgs []uint32
}

func (tr *echoTransport) RoundTrip(frame []byte) ([]byte, error) {
	dec, err := wire.NewDecoder(frame)
	if err != nil {
		return nil, err
	}
	if _, err := dec.ReadKind(); err != nil {
		return nil, err
	}
	if _, err := dec.U32(); err != nil {
		return nil, err
	}
	tr.lastName, err = dec.Str()
	if err != nil {
		return nil, err
	}

	tr.lastArgs = nil
	sum := uint32(0)
	for {
		v, err := dec.U32()
		if err != nil {
			break
		}
		tr.lastArgs = append(tr.lastArgs, v)
		sum += v
	}

	e := wire.NewRespond()
	e.PushU32(sum)
	return e.Finalize(), nil
}

func TestInvokerPrependsReceiver(t *testing.T) {
	tr := &echoTransport{}
	d := dispatch.New(tr, registry.New(), heap.NewTable())
	inv := NewInvoker(d)

	reply, err := inv.Invoke("Counter", "increment", 3, 5)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if tr.lastName != "Counter::increment" {
		t.Fatalf("name = %q", tr.lastName)
	}
	if len(tr.lastArgs) != 2 || tr.lastArgs[0] != 3 || tr.lastArgs[1] != 5 {
		t.Fatalf("args = %v, want [3 5]", tr.lastArgs)
	}
	v, err := reply.U32()
	if err != nil || v != 8 {
		t.Fatalf("result = %d, %v", v, err)
	}
}

func TestInvokerPropertyNormalization(t *testing.T) {
	tr := &echoTransport{}
	d := dispatch.New(tr, registry.New(), heap.NewTable())
	inv := NewInvoker(d)

	if _, err := inv.Get("Counter", "value", 3); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tr.lastName != "Counter::value" || len(tr.lastArgs) != 1 {
		t.Fatalf("get encoded as %q %v", tr.lastName, tr.lastArgs)
	}

	if _, err := inv.Set("Counter", "value", 3, 9); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(tr.lastArgs) != 2 || tr.lastArgs[1] != 9 {
		t.Fatalf("set encoded args %v, want handle then value", tr.lastArgs)
	}
}
