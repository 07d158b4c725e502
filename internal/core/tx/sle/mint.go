package sle

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
)

// MintData represents a fungible asset definition.
type MintData struct {
	Decimals uint8
	Supply   uint64

	HasMintAuthority bool
	MintAuthority    solana.PublicKey

	// A mint with a transfer hook invokes the hook program on every transfer.
	HasTransferHook     bool
	TransferHookProgram solana.PublicKey
}

// Encode serializes the mint.
func (m *MintData) Encode() ([]byte, error) {
	return encode(entry.TypeMint, m)
}

// IsAuthority reports whether key may mint new supply.
func (m *MintData) IsAuthority(key solana.PublicKey) bool {
	return m.HasMintAuthority && m.MintAuthority.Equals(key)
}

// ParseMint parses a Mint ledger entry from binary data
func ParseMint(data []byte) (*MintData, error) {
	m := &MintData{}
	if err := decode(entry.TypeMint, data, m); err != nil {
		return nil, err
	}
	return m, nil
}
