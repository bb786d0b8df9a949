package remote

import (
	"runtime"
	"sync"

	"github.com/hostbridge/hostbridge/dispatch"
	"github.com/hostbridge/hostbridge/errors"
	"github.com/hostbridge/hostbridge/wire"
)

// releaseFrame encodes the Evaluate that asks the peer to drop one slot
// from its reference table.
func releaseFrame(id uint64) []byte {
	e := wire.NewEvaluate(wire.FnReleaseRef)
	e.PushU64(id)
	return e.Finalize()
}

// cloneRef asks the peer to duplicate a slot and returns the fresh id.
// Unlike release this is a synchronous round trip: the caller needs the
// new id before it can hand the clone to another owner.
func cloneRef(d *dispatch.Dispatcher, id uint64) (uint64, error) {
	e := wire.NewEvaluate(wire.FnCloneRef)
	e.PushU64(id)
	reply, err := d.Call(e)
	if err != nil {
		return 0, err
	}
	if reply == nil {
		return 0, errors.New(errors.PhaseRelease, errors.KindTransportFailure).
			Detail("empty reply to clone request").Build()
	}
	return reply.U64()
}

// releaseState is the cleanup token for one wrapper. It must not
// reference the wrapper itself or the wrapper would never become
// unreachable.
type releaseState struct {
	once  sync.Once
	d     *dispatch.Dispatcher
	frame []byte
}

// release queues the drop notification, at most once per wrapper no
// matter how release is reached.
func (s *releaseState) release() {
	s.once.Do(func() {
		s.d.QueueRelease(s.frame)
	})
}

// track registers wrapper with the runtime's cleanup tracker and returns
// the shared release state for explicit Release calls.
func track[T any](wrapper *T, d *dispatch.Dispatcher, frame []byte) *releaseState {
	st := &releaseState{d: d, frame: frame}
	runtime.AddCleanup(wrapper, func(s *releaseState) { s.release() }, st)
	return st
}
