package amf0

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Value is the closed set of types that can appear in an AMF0 payload.
// The format fixes the variant set, so the interface is sealed: only the
// concrete types in this package implement it.
type Value interface {
	fmt.Stringer
	amf0value()
}

// Number is an 8-byte IEEE-754 double, marker 0x00. AMF0 has no integer
// type; producers encode ints as doubles.
type Number float64

// Boolean is a single flag, marker 0x01. Any nonzero payload byte decodes
// as true.
type Boolean bool

// String is UTF-8 text with a 16-bit length prefix, marker 0x02. Use
// NewString to enforce the length bound at construction.
type String string

// LongString is UTF-8 text with a 32-bit length prefix, marker 0x0C, for
// text that does not fit in a String.
type LongString string

// Null is the null type, marker 0x05. It carries no payload.
type Null struct{}

// Undefined is the undefined type, marker 0x06. It carries no payload.
type Undefined struct{}

// Property is a single key/value entry of an Object or ECMAArray.
type Property struct {
	Key   string
	Value Value
}

// Object is an ordered mapping from unique string keys to values, marker
// 0x03. Entry order is preserved so that decoding and re-encoding
// reproduces the original bytes.
type Object []Property

// ECMAArray is AMF0's associative array, marker 0x08. It has the same
// entry layout as Object preceded by a 4-byte associative count. The count
// is advisory: real-world producers under- and over-report it, so decoding
// ignores it, and encoding writes the actual entry count.
type ECMAArray []Property

// NewString builds a String, failing if the text does not fit the 16-bit
// length prefix.
func NewString(s string) (String, error) {
	if len(s) > MaxStringLength {
		return "", errors.Wrapf(ErrStringTooLong, "length %d, max %d", len(s), MaxStringLength)
	}
	return String(s), nil
}

// NewLongString builds a LongString, failing if the text does not fit the
// 32-bit length prefix.
func NewLongString(s string) (LongString, error) {
	if uint64(len(s)) > MaxLongStringLength {
		return "", errors.Wrapf(ErrStringTooLong, "length %d, max %d", len(s), uint64(MaxLongStringLength))
	}
	return LongString(s), nil
}

// Get returns the value stored under key and whether it is present.
func (o Object) Get(key string) (Value, bool) {
	for _, p := range o {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Get returns the value stored under key and whether it is present.
func (a ECMAArray) Get(key string) (Value, bool) {
	return Object(a).Get(key)
}

func (Number) amf0value()     {}
func (Boolean) amf0value()    {}
func (String) amf0value()     {}
func (LongString) amf0value() {}
func (Null) amf0value()       {}
func (Undefined) amf0value()  {}
func (Object) amf0value()     {}
func (ECMAArray) amf0value()  {}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (s String) String() string {
	return strconv.Quote(string(s))
}

func (s LongString) String() string {
	return strconv.Quote(string(s))
}

func (Null) String() string {
	return "null"
}

func (Undefined) String() string {
	return "undefined"
}

func (o Object) String() string {
	return formatProperties(o)
}

func (a ECMAArray) String() string {
	return formatProperties(a)
}

func formatProperties(props []Property) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range props {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(p.Key))
		sb.WriteString(": ")
		sb.WriteString(p.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
