package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"lz4", "none"}, Available())
	assert.True(t, IsAvailable("lz4"))

	_, err := Get("zstd")
	assert.Error(t, err)

	c, err := ByID(IDLZ4)
	require.NoError(t, err)
	assert.Equal(t, "lz4", c.Name())
}

func TestSealOpen(t *testing.T) {
	repetitive := bytes.Repeat([]byte("pool-config"), 64)
	tiny := []byte{0x70, 0x00, 0x01}

	tests := []struct {
		name       string
		compressor string
		data       []byte
		wantID     byte
	}{
		{"lz4 shrinks repetitive data", "lz4", repetitive, IDLZ4},
		{"lz4 stores incompressible data raw", "lz4", tiny, IDNone},
		{"none", "none", repetitive, IDNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Get(tt.compressor)
			require.NoError(t, err)

			blob, err := Seal(c, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, blob[0])

			got, err := Open(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestOpenRejectsCorruptBlobs(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	_, err = Open([]byte{7, 1, 2})
	assert.Error(t, err)

	_, err = Open([]byte{IDLZ4, 0xff, 0xff, 0xff, 0xff, 0x7f})
	assert.Error(t, err)
}
