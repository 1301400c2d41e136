package amf0

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Marshal encodes v to its AMF0 byte representation, marker byte included.
func Marshal(v Value) ([]byte, error) {
	switch v := v.(type) {
	case Number:
		return encodeNumber(float64(v)), nil
	case Boolean:
		return encodeBoolean(bool(v)), nil
	case String:
		return encodeString(string(v))
	case LongString:
		return encodeLongString(string(v))
	case Object:
		return encodeProperties(TypeObject, v)
	case ECMAArray:
		return encodeProperties(TypeECMAArray, v)
	case Null:
		return []byte{TypeNull}, nil
	case Undefined:
		return []byte{TypeUndefined}, nil
	default:
		return nil, errors.Errorf("amf0: cannot encode type %T", v)
	}
}

func encodeNumber(number float64) []byte {
	var buf [9]byte
	buf[0] = TypeNumber
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(number))
	return buf[:]
}

func encodeBoolean(b bool) []byte {
	var buf [2]byte
	buf[0] = TypeBoolean
	if b {
		buf[1] = 1
	}
	return buf[:]
}

// encodeString emits a short string: marker, 2-byte length, UTF-8 bytes.
func encodeString(s string) ([]byte, error) {
	if len(s) > MaxStringLength {
		return nil, errors.Wrapf(ErrStringTooLong, "length %d, max %d", len(s), MaxStringLength)
	}
	buf := make([]byte, 3+len(s))
	buf[0] = TypeString
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(s)))
	copy(buf[3:], s)
	return buf, nil
}

// encodeLongString emits a long string: marker, 4-byte length, UTF-8 bytes.
func encodeLongString(s string) ([]byte, error) {
	if uint64(len(s)) > MaxLongStringLength {
		return nil, errors.Wrapf(ErrStringTooLong, "length %d, max %d", len(s), uint64(MaxLongStringLength))
	}
	buf := make([]byte, 5+len(s))
	buf[0] = TypeLongString
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(s)))
	copy(buf[5:], s)
	return buf, nil
}

// encodeProperties emits an Object or ECMAArray: the marker, the associative
// count when the marker asks for one, each entry as a 2-byte length-prefixed
// key followed by the value's full encoding, then the 0x00 0x00 0x09
// terminator.
func encodeProperties(marker byte, props []Property) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(marker)
	if marker == TypeECMAArray {
		var count [4]byte
		binary.BigEndian.PutUint32(count[:], uint32(len(props)))
		buf.Write(count[:])
	}
	for _, p := range props {
		if len(p.Key) > MaxStringLength {
			return nil, errors.Wrapf(ErrStringTooLong, "key length %d, max %d", len(p.Key), MaxStringLength)
		}
		var keyLen [2]byte
		binary.BigEndian.PutUint16(keyLen[:], uint16(len(p.Key)))
		buf.Write(keyLen[:])
		buf.WriteString(p.Key)
		val, err := Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	// Terminator: an empty key followed by the object end marker.
	buf.Write([]byte{0x00, 0x00, TypeObjectEnd})
	return buf.Bytes(), nil
}
