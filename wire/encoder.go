package wire

import (
	"encoding/binary"
)

const headerSize = 12

// Encoder builds a frame by pushing typed values into per-type regions.
// The header is computed once, when Finalize runs; an Encoder is
// single-pass and must not be reused after Finalize.
type Encoder struct {
	u32s []uint32
	u16s []uint16
	u8s  []byte
	strs []byte
}

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// PushU8 appends a byte value to the 8-bit region.
func (e *Encoder) PushU8(v uint8) {
	e.u8s = append(e.u8s, v)
}

// PushU16 appends a value to the 16-bit region.
func (e *Encoder) PushU16(v uint16) {
	e.u16s = append(e.u16s, v)
}

// PushU32 appends a value to the 32-bit region.
func (e *Encoder) PushU32(v uint32) {
	e.u32s = append(e.u32s, v)
}

// PushU64 appends a 64-bit value as two 32-bit halves, low word first.
func (e *Encoder) PushU64(v uint64) {
	e.PushU32(uint32(v))
	e.PushU32(uint32(v >> 32))
}

// PushBool appends a bool as a single byte.
func (e *Encoder) PushBool(v bool) {
	if v {
		e.PushU8(1)
	} else {
		e.PushU8(0)
	}
}

// PushStr appends the string's byte length to the 32-bit region and its
// raw UTF-8 bytes to the string region.
func (e *Encoder) PushStr(s string) {
	e.PushU32(uint32(len(s)))
	e.strs = append(e.strs, s...)
}

// Len returns the size of the finalized frame in bytes.
func (e *Encoder) Len() int {
	return headerSize + 4*len(e.u32s) + 2*len(e.u16s) + len(e.u8s) + len(e.strs)
}

// Finalize produces one contiguous buffer sized to the sum of all
// regions, with the header computed from the final region lengths.
func (e *Encoder) Finalize() []byte {
	u16Off := headerSize + 4*len(e.u32s)
	u8Off := u16Off + 2*len(e.u16s)
	strOff := u8Off + len(e.u8s)

	buf := make([]byte, strOff+len(e.strs))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(u16Off))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(u8Off))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(strOff))

	pos := headerSize
	for _, v := range e.u32s {
		binary.LittleEndian.PutUint32(buf[pos:], v)
		pos += 4
	}
	for _, v := range e.u16s {
		binary.LittleEndian.PutUint16(buf[pos:], v)
		pos += 2
	}
	copy(buf[u8Off:], e.u8s)
	copy(buf[strOff:], e.strs)
	return buf
}
