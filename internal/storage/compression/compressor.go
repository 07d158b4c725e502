// Package compression compresses ledger entry blobs before they are stored.
package compression

import (
	"fmt"
	"sort"
	"sync"
)

// Compressor defines the interface for compression algorithms.
type Compressor interface {
	// Name returns the name of the compression algorithm.
	Name() string

	// ID is the tag byte stored in front of blobs written by this compressor.
	ID() byte

	// Compress compresses the input data.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress.
	Decompress(data []byte) ([]byte, error)
}

// Factory is a function that creates a new compressor instance.
type Factory func() Compressor

var (
	mu          sync.RWMutex
	compressors = make(map[string]Factory)
	byID        = make(map[byte]Factory)
)

// Register registers a compressor factory with the given name.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	compressors[name] = factory
	byID[factory().ID()] = factory
}

// Get returns a new compressor instance for the given name.
func Get(name string) (Compressor, error) {
	mu.RLock()
	factory, ok := compressors[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor: %s", name)
	}

	return factory(), nil
}

// ByID returns the compressor that writes the given tag byte.
func ByID(id byte) (Compressor, error) {
	mu.RLock()
	factory, ok := byID[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor id: %d", id)
	}
	return factory(), nil
}

// Available returns the sorted names of registered compressors.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAvailable checks if a compressor with the given name is available.
func IsAvailable(name string) bool {
	mu.RLock()
	_, ok := compressors[name]
	mu.RUnlock()
	return ok
}

// Seal compresses data with c and prefixes the tag byte of whichever
// compressor produced the stored form.
func Seal(c Compressor, data []byte) ([]byte, error) {
	body, err := c.Compress(data)
	if err != nil {
		return nil, err
	}
	id := c.ID()
	if body == nil {
		// Incompressible input is stored as is.
		body, id = data, IDNone
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, id)
	return append(out, body...), nil
}

// Open reverses Seal.
func Open(blob []byte) ([]byte, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("compression: empty blob")
	}
	c, err := ByID(blob[0])
	if err != nil {
		return nil, err
	}
	return c.Decompress(blob[1:])
}

// init registers the built-in compressors.
func init() {
	Register("none", func() Compressor { return &NoCompressor{} })
	Register("lz4", func() Compressor { return &LZ4Compressor{} })
}
