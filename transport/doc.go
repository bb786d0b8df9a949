// Package transport carries encoded frames between the two runtimes.
//
// Every transport is synchronous: RoundTrip sends one frame and blocks
// for the peer's answer, and an empty answer means the peer has nothing
// further to say. Two implementations are provided. The loopback pair
// connects two in-process endpoints over channels, which is enough to
// host both sides of a session in one binary and is what the tests use.
// The HTTP transport rides the frame in a custom request header, base64
// encoded, with the reply in the response body; this matches embedders
// whose script runtime can only reach the host through an intercepted
// HTTP scheme.
//
// The HTTP carrier is flat-call-only: the serving side answers each
// request with the terminating Respond and cannot issue nested
// Evaluates of its own mid-chain. Reentrant sessions belong on the
// loopback pair; a chain that strays onto HTTP in the server direction
// surfaces as a transport failure on the posting side.
package transport
