// Package heap implements the slot table backing cross-boundary object
// handles.
//
// A Table maps small integer ids to opaque values owned by the local
// runtime. The peer holds ids, never direct references; the table is the
// exclusive authoritative store for live ids. Removed ids go onto a free
// list and the most recently freed id is reused first, so ids are unique
// among currently occupied slots but recycle aggressively across
// remove/insert cycles.
//
// Id 0 is reserved and always invalid. Tables are constructed once per
// bridge session and passed explicitly to the components that need them;
// there is no ambient global table, which keeps multiple independent
// sessions possible.
package heap
