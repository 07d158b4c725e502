package compression

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4"
)

// Tag bytes of the built-in compressors.
const (
	IDNone byte = 0
	IDLZ4  byte = 1
)

// maxBlockSize bounds the decompressed size accepted from a header.
const maxBlockSize = 64 << 20

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string {
	return "none"
}

func (c *NoCompressor) ID() byte {
	return IDNone
}

// Compress returns a copy of data.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// Decompress returns a copy of data.
func (c *NoCompressor) Decompress(data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// LZ4Compressor implements LZ4 block compression. Blocks carry their
// decompressed length as a uvarint header.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string {
	return "lz4"
}

func (c *LZ4Compressor) ID() byte {
	return IDLZ4
}

// Compress compresses data using LZ4. It returns nil, nil when data does
// not shrink.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	hdr := binary.PutUvarint(out, uint64(len(data)))

	n, err := lz4.CompressBlock(data, out[hdr:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || hdr+n >= len(data) {
		return nil, nil
	}
	return out[:hdr+n], nil
}

// Decompress decompresses LZ4 data.
func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	size, hdr := binary.Uvarint(data)
	if hdr <= 0 {
		return nil, errors.New("lz4: bad length header")
	}
	if size > maxBlockSize {
		return nil, fmt.Errorf("lz4: block of %d bytes exceeds limit", size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[hdr:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("lz4: got %d bytes, header says %d", n, size)
	}
	return out, nil
}
