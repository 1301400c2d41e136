// Package amf0 implements encoding and decoding of Action Message Format
// version 0 (AMF0), the tagged binary serialization used by FLV script data
// tags and legacy RTMP messages. The codec operates on fully materialized
// in-memory buffers; all multi-byte integers are big-endian.
package amf0

const (
	TypeNumber      byte = 0x00
	TypeBoolean          = 0x01
	TypeString           = 0x02
	TypeObject           = 0x03
	TypeMovieClip        = 0x04 // reserved, not supported
	TypeNull             = 0x05
	TypeUndefined        = 0x06
	TypeReference        = 0x07
	TypeECMAArray        = 0x08
	TypeObjectEnd        = 0x09
	TypeStrictArray      = 0x0A
	TypeDate             = 0x0B
	TypeLongString       = 0x0C
	TypeUnsupported      = 0x0D
	TypeRecordSet        = 0x0E // reserved, not supported
	TypeXMLDocument      = 0x0F
	TypeTypedObject      = 0x10
)

// MaxStringLength is the largest byte length a short String can carry (its
// length prefix is an unsigned 16-bit integer).
const MaxStringLength = 65535

// MaxLongStringLength is the largest byte length a LongString can carry (its
// length prefix is an unsigned 32-bit integer).
const MaxLongStringLength = 1<<32 - 1

// DefaultMaxNesting is the recursion bound used by Unmarshal for nested
// Objects and ECMAArrays. Callers decoding untrusted input with unusual
// nesting requirements can use UnmarshalMaxNesting instead.
const DefaultMaxNesting = 32
