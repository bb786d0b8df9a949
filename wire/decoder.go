package wire

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/hostbridge/hostbridge/errors"
)

// Decoder reads typed values back out of a frame. Each region has an
// independent cursor; reads must mirror the encoder's pushes one-for-one.
type Decoder struct {
	buf []byte

	u32Pos int
	u16Pos int
	u8Pos  int
	strPos int

	u16End int
	u8End  int
	strEnd int
}

// NewDecoder validates the frame header and returns a Decoder positioned
// at the start of every region. Offsets must be monotonically increasing,
// within the buffer, and aligned to their region's element size.
func NewDecoder(buf []byte) (*Decoder, error) {
	if len(buf) < headerSize {
		return nil, errors.Malformed("frame too short for header: %d bytes", len(buf))
	}

	u16Off := int(binary.LittleEndian.Uint32(buf[0:4]))
	u8Off := int(binary.LittleEndian.Uint32(buf[4:8]))
	strOff := int(binary.LittleEndian.Uint32(buf[8:12]))

	if u16Off < headerSize || u8Off < u16Off || strOff < u8Off || strOff > len(buf) {
		return nil, errors.Malformed("inconsistent region offsets %d/%d/%d in %d-byte frame",
			u16Off, u8Off, strOff, len(buf))
	}
	if (u16Off-headerSize)%4 != 0 {
		return nil, errors.Malformed("32-bit region length %d not 4-byte aligned", u16Off-headerSize)
	}
	if (u8Off-u16Off)%2 != 0 {
		return nil, errors.Malformed("16-bit region length %d not 2-byte aligned", u8Off-u16Off)
	}

	return &Decoder{
		buf:    buf,
		u32Pos: headerSize,
		u16Pos: u16Off,
		u8Pos:  u8Off,
		strPos: strOff,
		u16End: u16Off,
		u8End:  u8Off,
		strEnd: strOff,
	}, nil
}

// U8 reads the next byte value.
func (d *Decoder) U8() (uint8, error) {
	if d.u8Pos >= d.strEnd {
		return 0, errors.Malformed("read past end of 8-bit region")
	}
	v := d.buf[d.u8Pos]
	d.u8Pos++
	return v, nil
}

// U16 reads the next 16-bit value.
func (d *Decoder) U16() (uint16, error) {
	if d.u16Pos+2 > d.u8End {
		return 0, errors.Malformed("read past end of 16-bit region")
	}
	v := binary.LittleEndian.Uint16(d.buf[d.u16Pos:])
	d.u16Pos += 2
	return v, nil
}

// U32 reads the next 32-bit value.
func (d *Decoder) U32() (uint32, error) {
	if d.u32Pos+4 > d.u16End {
		return 0, errors.Malformed("read past end of 32-bit region")
	}
	v := binary.LittleEndian.Uint32(d.buf[d.u32Pos:])
	d.u32Pos += 4
	return v, nil
}

// U64 reads two 32-bit halves, low word first.
func (d *Decoder) U64() (uint64, error) {
	lo, err := d.U32()
	if err != nil {
		return 0, err
	}
	hi, err := d.U32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// Bool reads a single byte and reports whether it is non-zero.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.U8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Str reads a byte length from the 32-bit region and that many UTF-8
// bytes from the string region.
func (d *Decoder) Str() (string, error) {
	n, err := d.U32()
	if err != nil {
		return "", err
	}
	// Compare in uint64: int(n) can truncate or go negative where int
	// is 32 bits, slipping a huge length past the check.
	if uint64(d.strPos)+uint64(n) > uint64(len(d.buf)) {
		return "", errors.Malformed("string of %d bytes exceeds string region", n)
	}
	data := d.buf[d.strPos : d.strPos+int(n)]
	d.strPos += int(n)
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(data)
	}
	return string(data), nil
}

// Empty reports whether every region has been fully consumed.
func (d *Decoder) Empty() bool {
	return d.u32Pos == d.u16End &&
		d.u16Pos == d.u8End &&
		d.u8Pos == d.strEnd &&
		d.strPos == len(d.buf)
}
