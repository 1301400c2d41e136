package amf0

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMarshalPrimitives(t *testing.T) {
	marshalTests := []struct {
		name string
		in   Value
		out  []byte
	}{
		{"number", Number(1.23), []byte{0x00, 0x3F, 0xF3, 0xAE, 0x14, 0x7A, 0xE1, 0x47, 0xAE}},
		{"numberZero", Number(0), []byte{0x00, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"booleanTrue", Boolean(true), []byte{0x01, 0x01}},
		{"booleanFalse", Boolean(false), []byte{0x01, 0x00}},
		{"string", String("hello"), []byte{0x02, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}},
		{"emptyString", String(""), []byte{0x02, 0x00, 0x00}},
		{"longString", LongString("hi"), []byte{0x0C, 0x00, 0x00, 0x00, 0x02, 'h', 'i'}},
		{"null", Null{}, []byte{0x05}},
		{"undefined", Undefined{}, []byte{0x06}},
	}

	for _, tt := range marshalTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.out) {
				t.Errorf("got % X, want % X", got, tt.out)
			}
		})
	}
}

func TestMarshalObject(t *testing.T) {
	obj := Object{
		{Key: "count", Value: Number(1.23)},
	}
	want := []byte{
		0x03,
		0x00, 0x05, 'c', 'o', 'u', 'n', 't',
		0x00, 0x3F, 0xF3, 0xAE, 0x14, 0x7A, 0xE1, 0x47, 0xAE,
		0x00, 0x00, 0x09,
	}

	got, err := Marshal(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestMarshalECMAArrayCount(t *testing.T) {
	arr := ECMAArray{
		{Key: "a", Value: Boolean(true)},
		{Key: "b", Value: Null{}},
	}

	got, err := Marshal(arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != TypeECMAArray {
		t.Errorf("expected marker 0x08, got 0x%02X", got[0])
	}
	count := []byte{0x00, 0x00, 0x00, 0x02}
	if !bytes.Equal(got[1:5], count) {
		t.Errorf("expected associative count % X, got % X", count, got[1:5])
	}
}

func TestUnmarshalObject(t *testing.T) {
	buf := []byte{
		0x03,
		0x00, 0x05, 'c', 'o', 'u', 'n', 't',
		0x00, 0x3F, 0xF3, 0xAE, 0x14, 0x7A, 0xE1, 0x47, 0xAE,
		0x00, 0x00, 0x09,
	}

	v, n, err := Unmarshal(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(buf) {
		t.Errorf("consumed %d bytes, want %d", n, len(buf))
	}
	obj, ok := v.(Object)
	if !ok {
		t.Fatalf("expected Object, got %T", v)
	}
	if len(obj) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(obj))
	}
	if got, _ := obj.Get("count"); got != Number(1.23) {
		t.Errorf("got %v, want 1.23", got)
	}
}

func TestRoundTrip(t *testing.T) {
	roundTripTests := []struct {
		name string
		in   Value
	}{
		{"number", Number(-42.5)},
		{"boolean", Boolean(true)},
		{"string", String("onMetaData")},
		{"longString", LongString(strings.Repeat("x", MaxStringLength+1))},
		{"null", Null{}},
		{"undefined", Undefined{}},
		{"emptyObject", Object{}},
		{"object", Object{
			{Key: "duration", Value: Number(12.5)},
			{Key: "stereo", Value: Boolean(true)},
			{Key: "encoder", Value: String("Lavf58")},
		}},
		{"ecmaArray", ECMAArray{
			{Key: "width", Value: Number(1920)},
			{Key: "height", Value: Number(1080)},
		}},
		{"nested", Object{
			{Key: "inner", Value: Object{
				{Key: "list", Value: ECMAArray{
					{Key: "0", Value: Null{}},
				}},
			}},
		}},
	}

	for _, tt := range roundTripTests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			decoded, n, err := Unmarshal(encoded)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if n != len(encoded) {
				t.Errorf("consumed %d bytes, want %d", n, len(encoded))
			}
			// Re-encoding a decoded value must reproduce the bytes exactly.
			reencoded, err := Marshal(decoded)
			if err != nil {
				t.Fatalf("re-marshal: %v", err)
			}
			if !bytes.Equal(encoded, reencoded) {
				t.Errorf("re-encoded bytes differ: got % X, want % X", reencoded, encoded)
			}
		})
	}
}

func TestStringLengthBoundary(t *testing.T) {
	atBound := strings.Repeat("a", MaxStringLength)
	if _, err := NewString(atBound); err != nil {
		t.Errorf("expected %d-byte string to construct, got %v", MaxStringLength, err)
	}
	if _, err := Marshal(String(atBound)); err != nil {
		t.Errorf("expected %d-byte string to encode, got %v", MaxStringLength, err)
	}

	overBound := atBound + "a"
	if _, err := NewString(overBound); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("expected ErrStringTooLong, got %v", err)
	}
	if _, err := Marshal(String(overBound)); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("expected ErrStringTooLong, got %v", err)
	}
	if _, err := NewLongString(overBound); err != nil {
		t.Errorf("expected long string to construct, got %v", err)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	values := []struct {
		name string
		in   Value
	}{
		{"number", Number(1)},
		{"boolean", Boolean(true)},
		{"string", String("abc")},
		{"longString", LongString("abc")},
		{"object", Object{{Key: "k", Value: Null{}}}},
		{"ecmaArray", ECMAArray{{Key: "k", Value: Null{}}}},
	}

	for _, tt := range values {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			// Removing the final byte of any valid encoding must fail.
			_, _, err = Unmarshal(encoded[:len(encoded)-1])
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("got %v, want ErrTruncated", err)
			}
		})
	}

	if _, _, err := Unmarshal(nil); !errors.Is(err, ErrTruncated) {
		t.Errorf("empty buffer: got %v, want ErrTruncated", err)
	}
}

func TestUnmarshalUnsupportedMarker(t *testing.T) {
	unsupported := [][]byte{
		{0xFF},
		{TypeDate, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{TypeReference, 0, 0},
		{TypeMovieClip},
	}

	for _, buf := range unsupported {
		if _, _, err := Unmarshal(buf); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("marker 0x%02X: got %v, want ErrUnsupportedType", buf[0], err)
		}
	}
}

func TestUnmarshalDuplicateKey(t *testing.T) {
	buf := []byte{
		0x03,
		0x00, 0x01, 'k', 0x05,
		0x00, 0x01, 'k', 0x05,
		0x00, 0x00, 0x09,
	}

	_, _, err := Unmarshal(buf)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("got %v, want ErrDuplicateKey", err)
	}
}

func TestUnmarshalInvalidTerminator(t *testing.T) {
	// Zero-length key followed by something other than the end marker.
	buf := []byte{0x03, 0x00, 0x00, 0x07}

	_, _, err := Unmarshal(buf)
	if !errors.Is(err, ErrInvalidTerminator) {
		t.Errorf("got %v, want ErrInvalidTerminator", err)
	}
}

func TestUnmarshalInvalidUTF8(t *testing.T) {
	buf := []byte{0x02, 0x00, 0x02, 0xC3, 0x28}

	_, _, err := Unmarshal(buf)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("got %v, want ErrInvalidUTF8", err)
	}
}

func TestUnmarshalAdvisoryCount(t *testing.T) {
	// One actual entry but a declared count of 99. Real producers misreport
	// this field, so the mismatch must not be an error.
	buf := []byte{
		0x08,
		0x00, 0x00, 0x00, 0x63,
		0x00, 0x01, 'k', 0x01, 0x01,
		0x00, 0x00, 0x09,
	}

	v, n, err := Unmarshal(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(buf) {
		t.Errorf("consumed %d bytes, want %d", n, len(buf))
	}
	arr, ok := v.(ECMAArray)
	if !ok {
		t.Fatalf("expected ECMAArray, got %T", v)
	}
	if len(arr) != 1 {
		t.Errorf("expected 1 entry, got %d", len(arr))
	}
}

func TestUnmarshalNonzeroBooleanIsTrue(t *testing.T) {
	v, _, err := Unmarshal([]byte{0x01, 0x7F})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Boolean(true) {
		t.Errorf("got %v, want true", v)
	}
}

func TestUnmarshalNestingTooDeep(t *testing.T) {
	// depth levels of objects, each holding the next under a single key.
	depth := DefaultMaxNesting + 1
	var inner Value = Null{}
	for i := 0; i < depth; i++ {
		inner = Object{{Key: "o", Value: inner}}
	}
	encoded, err := Marshal(inner)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	_, _, err = Unmarshal(encoded)
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("got %v, want ErrNestingTooDeep", err)
	}

	if _, _, err := UnmarshalMaxNesting(encoded, depth); err != nil {
		t.Errorf("expected decode to succeed with a raised limit, got %v", err)
	}
}

func TestValueString(t *testing.T) {
	obj := Object{
		{Key: "duration", Value: Number(12.5)},
		{Key: "title", Value: String("clip")},
		{Key: "extra", Value: Null{}},
	}
	want := `{"duration": 12.5, "title": "clip", "extra": null}`
	if got := obj.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
