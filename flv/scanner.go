package flv

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/torresjeff/flvmeta/amf0"
	"github.com/torresjeff/flvmeta/internal/binary24"
)

// ScriptData returns the payload of the first script data tag in an FLV
// byte buffer. The scan is linear: each tag record is {type u8, data size
// u24, timestamp u24, timestamp extension u8, stream id u24, payload,
// previous tag size u32}, and records of other types are skipped by their
// declared size. If the buffer ends before a script data tag appears, the
// scan fails with ErrMetadataNotFound.
func ScriptData(b []byte) ([]byte, error) {
	if len(b) < headerLength {
		return nil, errors.Wrapf(ErrInvalidHeader, "buffer holds %d bytes, header needs %d", len(b), headerLength)
	}
	if !bytes.Equal(b[:signatureLength], signature) {
		return nil, errors.Wrapf(ErrInvalidHeader, "signature % X", b[:signatureLength])
	}
	dataOffset := binary.BigEndian.Uint32(b[5:9])
	if dataOffset < headerLength || uint64(dataOffset) > uint64(len(b)) {
		return nil, errors.Wrapf(ErrInvalidHeader, "declared header size %d", dataOffset)
	}

	// The header is followed by a previous-tag-size placeholder, then tags.
	pos := int(dataOffset) + prevTagSizeLength
	for len(b)-pos >= tagHeaderLength {
		tagType := b[pos]
		dataSize := int(binary24.BigEndian.Uint24(b[pos+1 : pos+4]))
		payloadStart := pos + tagHeaderLength
		if len(b)-payloadStart < dataSize {
			if tagType == TagTypeScriptData {
				return nil, errors.Wrapf(amf0.ErrTruncated, "script data tag declares %d bytes, %d available", dataSize, len(b)-payloadStart)
			}
			break
		}
		if tagType == TagTypeScriptData {
			return b[payloadStart : payloadStart+dataSize], nil
		}
		pos = payloadStart + dataSize + prevTagSizeLength
	}
	return nil, ErrMetadataNotFound
}
