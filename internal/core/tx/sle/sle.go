// Package sle holds the layouts of ledger entries and their binary codec.
// Every entry is a 2-byte little-endian type tag followed by the borsh
// encoding of its data struct.
package sle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	bin "github.com/gagliardetto/binary"
)

const headerSize = 2

var (
	ErrShortEntry   = errors.New("sle: entry too short")
	ErrTypeMismatch = errors.New("sle: entry type mismatch")
)

// EntryType returns the type tag of a serialized entry.
func EntryType(data []byte) (entry.Type, error) {
	if len(data) < headerSize {
		return 0, ErrShortEntry
	}
	return entry.Type(binary.LittleEndian.Uint16(data)), nil
}

func encode(t entry.Type, v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint16(hdr[:], uint16(t))
	buf.Write(hdr[:])
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("sle: encode %s: %w", t, err)
	}
	return buf.Bytes(), nil
}

func decode(t entry.Type, data []byte, v any) error {
	got, err := EntryType(data)
	if err != nil {
		return err
	}
	if got != t {
		return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, t, got)
	}
	if err := bin.NewBorshDecoder(data[headerSize:]).Decode(v); err != nil {
		return fmt.Errorf("sle: decode %s: %w", t, err)
	}
	return nil
}
