package amf0

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Unmarshal decodes one AMF0 value from the start of buf, dispatching on the
// marker byte. It returns the value and the number of bytes consumed, so a
// caller holding a sequence of values can advance past each one. Decoding is
// all-or-nothing: no value is returned alongside an error. Nested Objects and
// ECMAArrays are bounded to DefaultMaxNesting levels.
func Unmarshal(buf []byte) (Value, int, error) {
	return unmarshal(buf, DefaultMaxNesting)
}

// UnmarshalMaxNesting is Unmarshal with an explicit recursion bound. Nesting
// beyond maxNesting levels of Object/ECMAArray fails with ErrNestingTooDeep
// instead of exhausting the call stack.
func UnmarshalMaxNesting(buf []byte, maxNesting int) (Value, int, error) {
	return unmarshal(buf, maxNesting)
}

func unmarshal(buf []byte, depth int) (Value, int, error) {
	if len(buf) == 0 {
		return nil, 0, errors.Wrap(ErrTruncated, "empty buffer")
	}
	switch buf[0] {
	case TypeNumber:
		return decodeNumber(buf)
	case TypeBoolean:
		return decodeBoolean(buf)
	case TypeString:
		return decodeString(buf)
	case TypeLongString:
		return decodeLongString(buf)
	case TypeObject:
		if depth <= 0 {
			return nil, 0, ErrNestingTooDeep
		}
		props, n, err := decodeProperties(buf[1:], depth)
		if err != nil {
			return nil, 0, err
		}
		return Object(props), 1 + n, nil
	case TypeECMAArray:
		if depth <= 0 {
			return nil, 0, ErrNestingTooDeep
		}
		if len(buf) < 5 {
			return nil, 0, errors.Wrap(ErrTruncated, "ECMA array associative count")
		}
		// The associative count is advisory. Producers are known to under-
		// and over-report it, so it is read and ignored rather than checked
		// against the actual entry count.
		_ = binary.BigEndian.Uint32(buf[1:5])
		props, n, err := decodeProperties(buf[5:], depth)
		if err != nil {
			return nil, 0, err
		}
		return ECMAArray(props), 5 + n, nil
	case TypeNull:
		return Null{}, 1, nil
	case TypeUndefined:
		return Undefined{}, 1, nil
	default:
		return nil, 0, errors.Wrapf(ErrUnsupportedType, "marker 0x%02X", buf[0])
	}
}

func decodeNumber(buf []byte) (Value, int, error) {
	if len(buf) < 9 {
		return nil, 0, errors.Wrapf(ErrTruncated, "number needs 9 bytes, got %d", len(buf))
	}
	return Number(math.Float64frombits(binary.BigEndian.Uint64(buf[1:9]))), 9, nil
}

func decodeBoolean(buf []byte) (Value, int, error) {
	if len(buf) < 2 {
		return nil, 0, errors.Wrap(ErrTruncated, "boolean needs a payload byte")
	}
	return Boolean(buf[1] != 0), 2, nil
}

func decodeString(buf []byte) (Value, int, error) {
	if len(buf) < 3 {
		return nil, 0, errors.Wrap(ErrTruncated, "string length prefix")
	}
	length := int(binary.BigEndian.Uint16(buf[1:3]))
	if len(buf)-3 < length {
		return nil, 0, errors.Wrapf(ErrTruncated, "string declares %d bytes, %d available", length, len(buf)-3)
	}
	payload := buf[3 : 3+length]
	if !utf8.Valid(payload) {
		return nil, 0, ErrInvalidUTF8
	}
	return String(payload), 3 + length, nil
}

func decodeLongString(buf []byte) (Value, int, error) {
	if len(buf) < 5 {
		return nil, 0, errors.Wrap(ErrTruncated, "long string length prefix")
	}
	length := binary.BigEndian.Uint32(buf[1:5])
	// Compare before converting or allocating: the declared length comes from
	// untrusted input and can exceed the remaining buffer by design.
	if uint64(len(buf)-5) < uint64(length) {
		return nil, 0, errors.Wrapf(ErrTruncated, "long string declares %d bytes, %d available", length, len(buf)-5)
	}
	payload := buf[5 : 5+int(length)]
	if !utf8.Valid(payload) {
		return nil, 0, ErrInvalidUTF8
	}
	return LongString(payload), 5 + int(length), nil
}

// decodeProperties parses the entry list shared by Object and ECMAArray: a
// run of 2-byte length-prefixed keys each followed by one full value, closed
// by a zero-length key and the object end marker. buf starts at the first
// entry (past the container's marker and any associative count); the
// returned count covers everything through the terminator.
func decodeProperties(buf []byte, depth int) ([]Property, int, error) {
	var props []Property
	seen := make(map[string]struct{})
	off := 0
	for {
		if len(buf)-off < 2 {
			return nil, 0, errors.Wrap(ErrTruncated, "object key length prefix")
		}
		keyLen := int(binary.BigEndian.Uint16(buf[off : off+2]))
		off += 2
		if keyLen == 0 {
			if off >= len(buf) {
				return nil, 0, errors.Wrap(ErrTruncated, "object end marker")
			}
			if buf[off] != TypeObjectEnd {
				return nil, 0, errors.Wrapf(ErrInvalidTerminator, "got 0x%02X", buf[off])
			}
			return props, off + 1, nil
		}
		if len(buf)-off < keyLen {
			return nil, 0, errors.Wrapf(ErrTruncated, "object key declares %d bytes, %d available", keyLen, len(buf)-off)
		}
		keyBytes := buf[off : off+keyLen]
		if !utf8.Valid(keyBytes) {
			return nil, 0, ErrInvalidUTF8
		}
		key := string(keyBytes)
		off += keyLen
		if _, dup := seen[key]; dup {
			return nil, 0, errors.Wrapf(ErrDuplicateKey, "key %q", key)
		}
		seen[key] = struct{}{}
		val, n, err := unmarshal(buf[off:], depth-1)
		if err != nil {
			return nil, 0, err
		}
		off += n
		props = append(props, Property{Key: key, Value: val})
	}
}
