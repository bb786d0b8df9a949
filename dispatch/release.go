package dispatch

import (
	"sync"

	"go.uber.org/zap"
)

// releaseQueue buffers drop notifications produced by weak-liveness
// callbacks. Those callbacks run on the runtime's reclamation goroutine,
// never on the session's logical thread, so delivery is deferred: queued
// frames are sent between calls, when no call is in flight.
type releaseQueue struct {
	mu     sync.Mutex
	frames [][]byte
}

func (q *releaseQueue) push(frame []byte) {
	q.mu.Lock()
	q.frames = append(q.frames, frame)
	q.mu.Unlock()
}

func (q *releaseQueue) drain() [][]byte {
	q.mu.Lock()
	frames := q.frames
	q.frames = nil
	q.mu.Unlock()
	return frames
}

// QueueRelease schedules an encoded release Evaluate for delivery on the
// session's logical thread. Safe to call from any goroutine.
func (d *Dispatcher) QueueRelease(frame []byte) {
	d.releases.push(frame)
}

// FlushReleases delivers queued drop notifications now. It must run on
// the session's logical thread with no call in flight; Call invokes it
// automatically before each top-level call.
func (d *Dispatcher) FlushReleases() {
	if d.depth != 0 {
		return
	}
	d.depth++
	defer func() { d.depth-- }()
	d.flushReleases()
}

// flushReleases sends each queued release as a real round trip whose
// response is discarded. Transport failures are safely ignorable here:
// the peer that never saw the drop leaks at worst.
func (d *Dispatcher) flushReleases() {
	for _, frame := range d.releases.drain() {
		if _, err := d.exchange(frame); err != nil {
			Logger().Debug("drop notification failed", zap.Error(err))
		}
	}
}
