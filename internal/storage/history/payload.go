package history

import (
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/LeJamon/goAMMd/internal/core/tx"
)

var msgpack = &codec.MsgpackHandle{}

func init() {
	msgpack.WriteExt = true
	msgpack.RawToString = true
}

// encodeMetadata packs call metadata for the meta column.
func encodeMetadata(m *tx.Metadata) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, msgpack).Encode(m); err != nil {
		return nil, fmt.Errorf("history: encode metadata: %w", err)
	}
	return b, nil
}

func decodeMetadata(b []byte) (*tx.Metadata, error) {
	var m tx.Metadata
	if err := codec.NewDecoderBytes(b, msgpack).Decode(&m); err != nil {
		return nil, fmt.Errorf("history: decode metadata: %w", err)
	}
	return &m, nil
}
