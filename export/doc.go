// Package export builds logical method-call names and routes them
// through the dispatcher.
//
// Exported object methods are addressed as `TypeName::member`. The first
// positional argument is always the receiver's handle; remaining
// arguments follow positionally and must be representable as unsigned
// 32-bit values or nested handle references. Richer argument marshaling
// is an extension point, not part of the protocol core.
//
// Exported types are enumerated up front: a Set maps each registered
// `TypeName::member` to a handler, and registering a type also installs
// its generated `TypeName::__drop` target, which removes the receiver
// from the handle table when the peer's wrapper is reclaimed.
//
// Property-style access is normalized here to a zero-argument get or a
// one-argument set call; the dispatcher is unaware of the distinction.
package export
