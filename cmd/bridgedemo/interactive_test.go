package main

import (
	"testing"

	"github.com/hostbridge/hostbridge"
	"github.com/hostbridge/hostbridge/config"
	"github.com/hostbridge/hostbridge/remote"
	"github.com/hostbridge/hostbridge/wire"
)

// respondTransport answers every frame with an empty respond and counts
// what it saw.
type respondTransport struct {
	frames int
}

func (tr *respondTransport) RoundTrip(frame []byte) ([]byte, error) {
	tr.frames++
	return wire.NewRespond().Finalize(), nil
}

func TestCounterSwapHappensInUpdate(t *testing.T) {
	tr := &respondTransport{}
	host := hostbridge.NewSession(tr, config.Default())

	old := remote.NewObject(host.Dispatcher(), "Counter", 1)
	fresh := remote.NewObject(host.Dispatcher(), "Counter", 2)

	m := newDemoModel()
	m.host = host
	m.counter = old

	// A command result carrying a counter: Update owns the swap and
	// releases the replaced wrapper.
	m.Update(actionResultMsg{result: "new counter", counter: fresh})

	if m.counter != fresh {
		t.Fatal("Update must install the replacement counter")
	}
	if m.state != stateResult {
		t.Fatalf("state = %d, want result view", m.state)
	}

	host.Dispatcher().FlushReleases()
	if tr.frames != 1 {
		t.Fatalf("transport saw %d frames, want the old counter's release", tr.frames)
	}
}

func TestPlainResultLeavesCounterAlone(t *testing.T) {
	tr := &respondTransport{}
	host := hostbridge.NewSession(tr, config.Default())
	c := remote.NewObject(host.Dispatcher(), "Counter", 1)

	m := newDemoModel()
	m.host = host
	m.counter = c

	m.Update(actionResultMsg{result: "counter is now 5"})

	if m.counter != c {
		t.Fatal("a result without a counter must not swap")
	}
	host.Dispatcher().FlushReleases()
	if tr.frames != 0 {
		t.Fatalf("transport saw %d frames, want none", tr.frames)
	}
}
