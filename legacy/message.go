package legacy

import (
	"encoding/base64"
	"encoding/json"

	"github.com/hostbridge/hostbridge/errors"
)

// DefaultHeader is the request header carrying the base64 JSON document.
// Distinct from the binary protocol's header so a server can host both.
const DefaultHeader = "Bridge-Json"

// Message kinds.
const (
	KindEvaluate = "evaluate"
	KindRespond  = "respond"
)

// Message is one legacy-protocol document. Evaluate messages carry a
// function id and positional arguments; Respond messages carry only the
// response value.
type Message struct {
	Kind     string          `json:"kind"`
	FnID     uint32          `json:"fn_id,omitempty"`
	Args     []Value         `json:"args,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// NewEvaluate builds an Evaluate message.
func NewEvaluate(fnID uint32, args ...Value) *Message {
	return &Message{Kind: KindEvaluate, FnID: fnID, Args: args}
}

// NewRespond builds a Respond message carrying value, which must be
// JSON-marshalable.
func NewRespond(value any) (*Message, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Cause(err).Detail("response value not representable").Build()
	}
	return &Message{Kind: KindRespond, Response: raw}, nil
}

// EncodeHeader serializes the message and base64 encodes it for the
// request header.
func (m *Message) EncodeHeader() (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Cause(err).Detail("message not representable").Build()
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeHeader reverses EncodeHeader.
func DecodeHeader(encoded string) (*Message, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Malformed("header is not valid base64")
	}
	return Decode(raw)
}

// Decode parses one JSON document into a message.
func Decode(raw []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformedMessage).
			Cause(err).Detail("undecodable document").Build()
	}
	switch m.Kind {
	case KindEvaluate, KindRespond:
		return &m, nil
	default:
		return nil, errors.Malformed("unknown message kind %q", m.Kind)
	}
}
