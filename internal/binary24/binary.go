// Package binary24 reads and writes 3-byte big-endian unsigned integers,
// which FLV tag headers use for data sizes, timestamps and stream IDs.
package binary24

var BigEndian bigEndian

type bigEndian struct{}

func (bigEndian) Uint24(b []byte) uint32 {
	return uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16
}

func (bigEndian) PutUint24(b []byte, v uint32) {
	_ = b[2] // early bounds check to guarantee safety of writes below
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}
