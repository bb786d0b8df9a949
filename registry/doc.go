// Package registry maps numeric function ids to the decode/encode
// procedure pairs for every function the local runtime exposes to the
// peer.
//
// The table is bound wholesale: Bind replaces any previous table, which
// happens when the embedding environment reinitializes the bridge. Once
// bound, an index designates the same signature for the life of the
// registry. Lookups support two access patterns: synchronous (the table
// is populated before the first call) and deferred (callbacks queued via
// WhenBound run once Bind delivers the table, for environments where
// caller code races the registry's population at startup).
package registry
