package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	// Asset layer
	TypeMint         Type = 0x004d // Fungible asset definitions
	TypeTokenAccount Type = 0x0074 // Balances held by an owner for one mint

	// Pools
	TypePoolConfig       Type = 0x0070 // Pool identity, fee and lock state
	TypeBridgePoolConfig Type = 0x0062 // Restricted-asset bridge attached to a pool

	// Transfer hook
	TypeExtraAccountMetaList Type = 0x0065 // Accounts required by a mint's transfer hook

	// Authority is a derived signer with no record behind it
	TypeAuthority Type = 0x0061
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeMint:
		return "Mint"
	case TypeTokenAccount:
		return "TokenAccount"
	case TypePoolConfig:
		return "PoolConfig"
	case TypeBridgePoolConfig:
		return "BridgePoolConfig"
	case TypeExtraAccountMetaList:
		return "ExtraAccountMetaList"
	case TypeAuthority:
		return "Authority"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}

// HasRecord reports whether entries of this type are stored in the ledger.
func (t Type) HasRecord() bool {
	return t != TypeAuthority
}
