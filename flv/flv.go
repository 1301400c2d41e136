// Package flv locates the AMF0 metadata payload embedded in an FLV
// container. It consumes FLV byte buffers, it never produces them; muxing
// and everything past the first script data tag is out of scope.
package flv

import "errors"

const (
	TagTypeAudio      = 8
	TagTypeVideo      = 9
	TagTypeScriptData = 18
)

// Header geometry. An FLV file starts with the 3-byte "FLV" signature, a
// version byte, a flags byte and a 4-byte declared header size, followed by
// a 4-byte previous-tag-size placeholder before the first tag.
const (
	signatureLength   = 3
	headerLength      = 9
	prevTagSizeLength = 4
	tagHeaderLength   = 11
)

var signature = []byte("FLV")

var ErrInvalidHeader = errors.New("flv: buffer does not start with a valid FLV header")
var ErrMetadataNotFound = errors.New("flv: no script data tag in stream")
