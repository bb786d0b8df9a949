package wire

import (
	"github.com/hostbridge/hostbridge/errors"
)

// Kind tags a frame as a call or a reply. The tag is the first value in
// the 8-bit region, which makes it the first byte after the string
// region boundary on the wire.
type Kind uint8

const (
	// KindEvaluate asks the receiver to execute a function or method.
	KindEvaluate Kind = 0
	// KindRespond carries a function's result, possibly empty.
	KindRespond Kind = 1
)

// Reserved function ids, fixed like small syscall numbers and never
// reassignable by user registration.
const (
	// FnInvokeCallback invokes a callable heap handle; the callee reads
	// a 64-bit heap id followed by the callable's own arguments.
	FnInvokeCallback uint32 = 0

	// FnInvokeExport invokes a named export; the callee reads the
	// export-name string, then the receiver handle, then trailing args.
	FnInvokeExport uint32 = 0xFFFFFFFD

	// FnCloneRef duplicates a previously issued handle or function id;
	// the callee reads a 64-bit id and replies with a fresh id for the
	// same slot value, so two owners can release independently.
	FnCloneRef uint32 = 0xFFFFFFFE

	// FnReleaseRef releases a previously issued handle or function id;
	// the callee reads a 64-bit id and replies with an empty Respond.
	FnReleaseRef uint32 = 0xFFFFFFFF
)

// NewEvaluate starts an Evaluate frame addressed to a function id.
func NewEvaluate(target uint32) *Encoder {
	e := NewEncoder()
	e.PushU8(uint8(KindEvaluate))
	e.PushU32(target)
	return e
}

// NewExportEvaluate starts an Evaluate frame addressed to a named export.
// The caller pushes the receiver handle and any trailing arguments.
func NewExportEvaluate(name string) *Encoder {
	e := NewEvaluate(FnInvokeExport)
	e.PushStr(name)
	return e
}

// NewRespond starts a Respond frame; the caller pushes the payload.
func NewRespond() *Encoder {
	e := NewEncoder()
	e.PushU8(uint8(KindRespond))
	return e
}

// ReadKind consumes and validates the frame's message-kind byte.
func (d *Decoder) ReadKind() (Kind, error) {
	v, err := d.U8()
	if err != nil {
		return 0, err
	}
	k := Kind(v)
	if k != KindEvaluate && k != KindRespond {
		return 0, errors.Malformed("unknown message kind %d", v)
	}
	return k, nil
}
