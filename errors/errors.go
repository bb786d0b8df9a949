package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode    Phase = "encode"    // building a wire frame
	PhaseDecode    Phase = "decode"    // reading a wire frame
	PhaseDispatch  Phase = "dispatch"  // resolving and executing a call
	PhaseTransport Phase = "transport" // carrying a frame to the peer
	PhaseRegistry  Phase = "registry"  // function table operations
	PhaseRelease   Phase = "release"   // cross-runtime reference release
)

// Kind categorizes the error
type Kind string

const (
	KindUnresolvedFunction Kind = "unresolved_function"
	KindTransportFailure   Kind = "transport_failure"
	KindMalformedMessage   Kind = "malformed_message"
	KindArgumentMismatch   Kind = "argument_mismatch"
	KindInvalidUTF8        Kind = "invalid_utf8"
	KindInvalidData        Kind = "invalid_data"
	KindOverflow           Kind = "overflow"
	KindNotBound           Kind = "not_bound"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnresolvedFunction reports an Evaluate target with no registry entry.
// Fatal to the current call chain; never retried.
func UnresolvedFunction(id uint32, registered int) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindUnresolvedFunction,
		Detail: fmt.Sprintf("function id %d outside registered range (%d entries)", id, registered),
		Value:  id,
	}
}

// UnresolvedExport reports an export-call target with no matching export.
func UnresolvedExport(name string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindUnresolvedFunction,
		Detail: fmt.Sprintf("export %q not registered", name),
		Value:  name,
	}
}

// TransportFailure wraps a failed or empty transport exchange.
// Callers issuing drop notifications treat this as safely ignorable.
func TransportFailure(cause error) *Error {
	return &Error{
		Phase:  PhaseTransport,
		Kind:   KindTransportFailure,
		Detail: "no usable response from peer",
		Cause:  cause,
	}
}

// Malformed reports offsets or lengths inconsistent with the frame size.
func Malformed(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedMessage,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// ArgumentMismatch reports a runtime value whose shape does not match
// what the target call site expects. Fatal, never coerced.
func ArgumentMismatch(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindArgumentMismatch,
		Path:   path,
		Detail: detail,
	}
}

// InvalidUTF8 reports a string region run that is not valid UTF-8.
func InvalidUTF8(data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// NotBound reports a registry lookup before any table was bound.
func NotBound() *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindNotBound,
		Detail: "function table not bound",
	}
}
