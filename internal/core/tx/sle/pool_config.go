package sle

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
)

// PoolConfigData is the durable identity of a pool. Only Locked and the
// bridge link change after creation.
type PoolConfigData struct {
	Seed uint64

	HasAuthority bool
	Authority    solana.PublicKey

	MintA  solana.PublicKey
	MintB  solana.PublicKey
	FeeBps uint16
	Locked bool

	ConfigBump uint8
	LPBump     uint8
	VaultABump uint8
	VaultBBump uint8

	IsBridgePool    bool
	HasBridgeConfig bool
	BridgeConfig    solana.PublicKey
}

// Encode serializes the config.
func (c *PoolConfigData) Encode() ([]byte, error) {
	return encode(entry.TypePoolConfig, c)
}

// Mints returns the input and output mints of a swap in the given direction.
func (c *PoolConfigData) Mints(aToB bool) (in, out solana.PublicKey) {
	if aToB {
		return c.MintA, c.MintB
	}
	return c.MintB, c.MintA
}

// ParsePoolConfig parses a PoolConfig ledger entry from binary data
func ParsePoolConfig(data []byte) (*PoolConfigData, error) {
	c := &PoolConfigData{}
	if err := decode(entry.TypePoolConfig, data, c); err != nil {
		return nil, err
	}
	return c, nil
}
