package legacy

import "encoding/json"

// Value is one legacy-protocol argument. Scalars travel as plain JSON;
// callables travel as a tagged reference object so the receiving side
// can call back through the binary protocol's callback id.
//
// JSON null and an absent value are interchangeable on this boundary:
// both normalize to the zero Value, and accessors treat them as the
// falsy default for the requested type. This is the only place the
// bridge coerces anything.
type Value struct {
	raw json.RawMessage
}

// funcRef is the wire shape of a callable reference.
type funcRef struct {
	Type string `json:"type"`
	ID   uint64 `json:"id"`
}

// String builds a string value.
func String(s string) Value {
	raw, _ := json.Marshal(s)
	return Value{raw: raw}
}

// Number builds a numeric value.
func Number(n float64) Value {
	raw, _ := json.Marshal(n)
	return Value{raw: raw}
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	raw, _ := json.Marshal(b)
	return Value{raw: raw}
}

// FuncID builds a callable reference carrying a peer callback id.
func FuncID(id uint64) Value {
	raw, _ := json.Marshal(funcRef{Type: "function", ID: id})
	return Value{raw: raw}
}

// Null is the absent value.
func Null() Value {
	return Value{}
}

// IsNull reports whether the value is JSON null or absent.
func (v Value) IsNull() bool {
	return len(v.raw) == 0 || string(v.raw) == "null"
}

// AsString returns the string payload, or "" for null and non-strings.
func (v Value) AsString() string {
	var s string
	if v.IsNull() || json.Unmarshal(v.raw, &s) != nil {
		return ""
	}
	return s
}

// AsNumber returns the numeric payload, or 0 for null and non-numbers.
func (v Value) AsNumber() float64 {
	var n float64
	if v.IsNull() || json.Unmarshal(v.raw, &n) != nil {
		return 0
	}
	return n
}

// AsBool returns the boolean payload, or false for null and non-bools.
func (v Value) AsBool() bool {
	var b bool
	if v.IsNull() || json.Unmarshal(v.raw, &b) != nil {
		return false
	}
	return b
}

// AsFunc returns the callback id of a callable reference.
func (v Value) AsFunc() (uint64, bool) {
	if v.IsNull() {
		return 0, false
	}
	var f funcRef
	if json.Unmarshal(v.raw, &f) != nil || f.Type != "function" {
		return 0, false
	}
	return f.ID, true
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v *Value) UnmarshalJSON(raw []byte) error {
	v.raw = append(v.raw[:0], raw...)
	return nil
}
