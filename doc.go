// Package hostbridge implements a binary remote-call bridge between a
// native host runtime and an embedded script runtime. Either side can
// invoke functions and methods owned by the other as if they were
// local, while object lifetimes stay consistent across two
// independently managed memory spaces.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	hostbridge/          Root package with the Session facade
//	├── wire/            Region-buffer binary codec and frame shapes
//	├── heap/            Reusable-id handle table for local values
//	├── registry/        Numeric function table the peer can invoke
//	├── dispatch/        Reentrant synchronous call protocol
//	├── export/          `TypeName::member` export naming and routing
//	├── remote/          Proxies for peer-owned handles, with
//	│                    weak-liveness release
//	├── transport/       Loopback and HTTP frame carriers
//	├── legacy/          JSON text protocol for demo-level natives
//	├── config/          Session configuration
//	└── errors/          Structured error types
//
// # Quick Start
//
// Connect two in-process sides over a loopback pair:
//
//	host, script := transport.Pair()
//
//	s := hostbridge.NewSession(host, config.Default())
//	s.Funcs.Bind([]registry.Entry{...})
//
//	go script.Serve(peer.HandleFrame)
//
//	e := wire.NewEvaluate(1)
//	e.PushU32(42)
//	reply, err := s.Call(e)
//
// Every call blocks until the peer's terminating Respond arrives and
// transparently executes any nested calls the peer issues while the
// call is pending.
package hostbridge
