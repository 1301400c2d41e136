package flv

import (
	"go.uber.org/zap"

	"github.com/torresjeff/flvmeta/amf0"
)

// MetadataExtractor pulls the AMF0 metadata value out of an FLV buffer.
// Script data payloads conventionally start with the string "onMetaData"
// followed by an Object or ECMAArray of properties; the leading string is
// accepted whatever its text and discarded, and the second value is
// returned as the metadata.
type MetadataExtractor struct {
	logger *zap.SugaredLogger
	// maxNesting bounds recursion while decoding the metadata value.
	maxNesting int
}

func NewMetadataExtractor(logger *zap.SugaredLogger, maxNesting int) *MetadataExtractor {
	return &MetadataExtractor{
		logger:     logger,
		maxNesting: maxNesting,
	}
}

// Extract locates the first script data tag in flv and decodes its
// metadata. Failures from the locator and from either decode step propagate
// unchanged.
func (e *MetadataExtractor) Extract(flv []byte) (amf0.Value, error) {
	payload, err := ScriptData(flv)
	if err != nil {
		return nil, err
	}
	e.logger.Debugw("located script data tag", "payloadBytes", len(payload))

	name, consumed, err := amf0.UnmarshalMaxNesting(payload, e.maxNesting)
	if err != nil {
		return nil, err
	}
	e.logger.Debugw("skipping metadata name", "name", name.String())

	metadata, _, err := amf0.UnmarshalMaxNesting(payload[consumed:], e.maxNesting)
	if err != nil {
		return nil, err
	}
	return metadata, nil
}

// Metadata extracts FLV metadata with a nop logger and the default nesting
// limit. It is the one-call form of MetadataExtractor.
func Metadata(flv []byte) (amf0.Value, error) {
	return NewMetadataExtractor(zap.NewNop().Sugar(), amf0.DefaultMaxNesting).Extract(flv)
}
