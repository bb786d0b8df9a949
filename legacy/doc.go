// Package legacy implements the text protocol that predates the binary
// frame format. It carries the same Evaluate/Respond shapes as a JSON
// document, base64 encoded in its own request header, and exists only
// for a small set of demo-level native calls: logging, alerting, text
// mutation, and event-listener registration. None of these touch the
// handle table or the binary codec; sessions that need real object
// traffic use the binary protocol.
package legacy
