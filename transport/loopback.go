package transport

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/errors"
)

// Endpoint is one side of an in-process loopback pair. Frames sent with
// RoundTrip arrive at the peer endpoint and vice versa.
//
// The pair preserves the session's reentrancy model without any framing
// of its own: every frame travels as the answer to whatever the other
// side is currently awaiting. A peer blocked inside its frame handler
// is not reading its inbox, so nested round trips issued by the handler
// interleave with the initiator's call chain in exactly the order the
// dispatcher expects.
type Endpoint struct {
	out chan<- []byte
	in  <-chan []byte

	closeOnce sync.Once
}

// Pair creates two connected loopback endpoints.
func Pair() (*Endpoint, *Endpoint) {
	ab := make(chan []byte)
	ba := make(chan []byte)
	a := &Endpoint{out: ab, in: ba}
	b := &Endpoint{out: ba, in: ab}
	return a, b
}

// RoundTrip sends frame to the peer and blocks for the next frame the
// peer sends back.
func (e *Endpoint) RoundTrip(frame []byte) ([]byte, error) {
	e.out <- frame
	reply, ok := <-e.in
	if !ok {
		return nil, errors.New(errors.PhaseTransport, errors.KindTransportFailure).
			Detail("loopback peer closed").Build()
	}
	return reply, nil
}

// Serve answers inbound frames with handle until the peer closes.
// Handler errors are logged and answered with an empty frame; a handler
// that issues nested round trips of its own works, because Serve is
// blocked inside it and not competing for the inbox.
func (e *Endpoint) Serve(handle func(frame []byte) ([]byte, error)) {
	for frame := range e.in {
		resp, err := handle(frame)
		if err != nil {
			Logger().Debug("loopback handler failed", zap.Error(err))
			resp = nil
		}
		e.out <- resp
	}
}

// Close shuts down the outbound side, stopping a peer blocked in Serve
// or RoundTrip. Safe to call more than once.
func (e *Endpoint) Close() {
	e.closeOnce.Do(func() {
		close(e.out)
	})
}
