package amf0

import "errors"

var ErrTruncated = errors.New("amf0: buffer shorter than a declared or expected field")
var ErrUnsupportedType = errors.New("amf0: marker byte does not match any supported type")
var ErrInvalidUTF8 = errors.New("amf0: string payload is not valid UTF-8")
var ErrStringTooLong = errors.New("amf0: string exceeds the length prefix bound")
var ErrInvalidTerminator = errors.New("amf0: expected object end marker after empty key")
var ErrDuplicateKey = errors.New("amf0: duplicate key in object")
var ErrNestingTooDeep = errors.New("amf0: nesting exceeds the maximum depth")
