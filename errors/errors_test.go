package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDispatch,
				Kind:   KindArgumentMismatch,
				Path:   []string{"increment", "delta"},
				Detail: "not a u32",
			},
			contains: []string{"[dispatch]", "argument_mismatch", "increment.delta", "not a u32"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindMalformedMessage,
			},
			contains: []string{"[decode]", "malformed_message"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseTransport,
				Kind:   KindTransportFailure,
				Detail: "no usable response",
				Cause:  errors.New("connection refused"),
			},
			contains: []string{"[transport]", "transport_failure", "caused by", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := TransportFailure(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not match cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	a := UnresolvedFunction(5, 2)
	b := UnresolvedFunction(9, 3)
	if !errors.Is(a, b) {
		t.Error("same phase and kind must match")
	}
	if errors.Is(a, NotBound()) {
		t.Error("different kind must not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseEncode, KindOverflow).
		Path("args", "0").
		Value(uint64(1 << 40)).
		Cause(cause).
		Detail("value %d exceeds u32", uint64(1<<40)).
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindOverflow {
		t.Fatalf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 || err.Path[0] != "args" {
		t.Fatalf("path = %v", err.Path)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if !strings.Contains(err.Detail, "exceeds u32") {
		t.Fatalf("detail = %q", err.Detail)
	}
}

func TestConstructors(t *testing.T) {
	if e := UnresolvedFunction(7, 3); e.Kind != KindUnresolvedFunction || e.Phase != PhaseDispatch {
		t.Errorf("UnresolvedFunction = %v", e)
	}
	if e := UnresolvedExport("Counter::missing"); !strings.Contains(e.Detail, "Counter::missing") {
		t.Errorf("UnresolvedExport = %v", e)
	}
	if e := Malformed("offset %d", 99); !strings.Contains(e.Detail, "99") {
		t.Errorf("Malformed = %v", e)
	}
	if e := InvalidUTF8([]byte{0xFF, 0xFE}); e.Kind != KindInvalidUTF8 {
		t.Errorf("InvalidUTF8 = %v", e)
	}
}
