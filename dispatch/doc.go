// Package dispatch drives the Evaluate/Respond protocol over a
// transport, including reentrant nested calls.
//
// An outbound call encodes an Evaluate frame, sends it, and blocks for a
// reply. If the reply is a Respond, its payload goes back to the caller.
// If the reply is itself an Evaluate, the local side is being asked to
// execute a function before the original call can complete: the
// dispatcher resolves the target, executes it, sends a Respond back, and
// recurses on whatever comes next until a Respond terminates the chain.
// Nesting depth equals the number of cross-boundary calls chained within
// one logical operation; there is no parallelism, no pipelining, and no
// timeout at this layer. A call that never receives a reply blocks
// forever; bounded waits belong to the transport.
//
// Inbound calls from the peer enter through HandleFrame, which resolves
// the target against the session's function registry (or the reserved
// callback, export, and release ids), executes it, and returns the
// encoded Respond.
package dispatch
