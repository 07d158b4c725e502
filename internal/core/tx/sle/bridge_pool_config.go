package sle

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
)

// BridgePoolConfigData links a pool to the restricted mint it wraps.
type BridgePoolConfigData struct {
	AMMConfig      solana.PublicKey
	RestrictedMint solana.PublicKey
	BridgeMint     solana.PublicKey
	TokenVault     solana.PublicKey
	Bump           uint8
}

// Encode serializes the bridge config.
func (b *BridgePoolConfigData) Encode() ([]byte, error) {
	return encode(entry.TypeBridgePoolConfig, b)
}

// ParseBridgePoolConfig parses a BridgePoolConfig ledger entry from binary data
func ParseBridgePoolConfig(data []byte) (*BridgePoolConfigData, error) {
	b := &BridgePoolConfigData{}
	if err := decode(entry.TypeBridgePoolConfig, data, b); err != nil {
		return nil, err
	}
	return b, nil
}
