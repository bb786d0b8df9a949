// Package wire implements the binary region-buffer codec used on the
// bridge wire.
//
// # Frame layout
//
// Every frame starts with a 12-byte header of three little-endian 32-bit
// offsets, each measured from the start of the buffer:
//
//	bytes 0..3   u16Offset  end of the 32-bit region
//	bytes 4..7   u8Offset   end of the 16-bit region
//	bytes 8..11  strOffset  end of the byte region
//
// The regions follow in order: 32-bit values (12..u16Offset), 16-bit
// values (u16Offset..u8Offset), bytes (u8Offset..strOffset), then
// length-prefixed UTF-8 runs (strOffset..end). Each primitive is pushed
// to exactly one region in encode order, and the decoder reads each
// region with an independent cursor in the same order. The protocol is
// not self-describing: both sides must agree on field order for every
// message shape.
//
// 64-bit values travel as two 32-bit halves, low word first. Strings put
// their byte length in the 32-bit region and their raw UTF-8 bytes in
// the string region.
//
// Unlike the layout's original contract, reading past a region's end is
// not undefined behavior here: every read is bounds-checked and fails
// with a malformed_message error, and header offsets are validated when
// the decoder is constructed.
package wire
