// Package remote provides proxy wrappers for handles owned by the peer
// runtime, so local code can invoke them without manual lifetime
// bookkeeping.
//
// A Func wraps a bare callable and routes invocations through the
// reserved callback id; an Object wraps an instance handle and routes
// member calls through the export convention. Constructing a wrapper
// registers it with the runtime's cleanup tracker bound to a release
// token: once the wrapper becomes unreachable, the tracker fires at most
// once, at an unspecified later time, and queues a drop notification
// (an Evaluate addressed to the reserved release id for callables, or to
// the generated `TypeName::__drop` export for objects). The notification
// is fire-and-forget from the wrapper's perspective but still a real
// round trip on the wire; its response is discarded and transport
// failures are ignored.
//
// Liveness tracking here is automatic but delayed: runtime.AddCleanup
// guarantees the callback never fires while the wrapper is still
// reachable, and queued notifications are only delivered between calls
// on the session's logical thread, never while a call using the wrapper
// is in flight. Callers wanting deterministic release can invoke
// Release explicitly; explicit and automatic release together still
// notify the peer exactly once.
package remote
