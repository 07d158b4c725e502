package keylet

import (
	"encoding/binary"
	"fmt"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
)

// Seed prefixes for derived addresses. These are part of the persisted
// address scheme and must never change.
var (
	seedConfig            = []byte("config")
	seedLP                = []byte("lp")
	seedSideVault         = []byte("sol_vault")
	seedBridgePoolConfig  = []byte("bridge_pool_config")
	seedBridgeMint        = []byte("bridge_mint")
	seedExtraAccountMetas = []byte("extra-account-metas")
	seedDelegate          = []byte("delegate")
)

var (
	// ProgramID owns pool, vault and bridge addresses.
	ProgramID = solana.MustPublicKeyFromBase58("AwovFVc8D64taLRrHjmg4ZeNSh6xnZGTbd2Arv6kbcwd")

	// HookProgramID owns the fee hook's metadata list and delegate.
	HookProgramID = solana.MustPublicKeyFromBase58("88CNX3Y7TyzjPtD76YhpmnPAsrmhSsYRVS5ad2wKMjuk")

	// NativeMint is the side asset used for hook fees and native pools.
	NativeMint = solana.WrappedSol
)

// Keylet represents an addressable location in the ledger state.
// Derived keylets carry the bump that took the address off the curve.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
	Bump uint8
}

// Address returns the key as a public key.
func (k Keylet) Address() solana.PublicKey {
	return solana.PublicKeyFromBytes(k.Key[:])
}

func (k Keylet) String() string {
	return fmt.Sprintf("%s:%s", k.Type, k.Address())
}

// derive finds the program address for seeds under program.
func derive(t entry.Type, program solana.PublicKey, seeds ...[]byte) Keylet {
	addr, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		// Only reachable with more than 16 seeds or a seed over 32 bytes.
		panic(fmt.Sprintf("keylet: derive %s: %v", t, err))
	}
	return Keylet{Type: t, Key: addr, Bump: bump}
}

// ConfigSeeds returns the derivation seeds of a pool config, without bump.
func ConfigSeeds(seed uint64) [][]byte {
	le := make([]byte, 8)
	binary.LittleEndian.PutUint64(le, seed)
	return [][]byte{seedConfig, le}
}

// Config returns the keylet for the pool config with the given seed.
func Config(seed uint64) Keylet {
	return derive(entry.TypePoolConfig, ProgramID, ConfigSeeds(seed)...)
}

// LPMint returns the keylet for a pool's LP share mint.
func LPMint(config [32]byte) Keylet {
	return derive(entry.TypeMint, ProgramID, seedLP, config[:])
}

// SideVaultSeeds returns the derivation seeds of a side vault, without bump.
func SideVaultSeeds(config [32]byte) [][]byte {
	return [][]byte{seedSideVault, config[:]}
}

// SideVault returns the keylet for a pool's native side-asset vault. The
// vault account is owned by its own derived address.
func SideVault(config [32]byte) Keylet {
	return derive(entry.TypeTokenAccount, ProgramID, SideVaultSeeds(config)...)
}

// BridgeConfigSeeds returns the derivation seeds of a bridge config, without bump.
func BridgeConfigSeeds(config [32]byte) [][]byte {
	return [][]byte{seedBridgePoolConfig, config[:]}
}

// BridgeConfig returns the keylet for the bridge attached to a pool.
func BridgeConfig(config [32]byte) Keylet {
	return derive(entry.TypeBridgePoolConfig, ProgramID, BridgeConfigSeeds(config)...)
}

// BridgeMint returns the keylet for the proxy mint issued by a bridge.
// It depends only on the pool config, so a pool may be created on its
// bridge mint before the bridge exists.
func BridgeMint(config [32]byte) Keylet {
	return derive(entry.TypeMint, ProgramID, seedBridgeMint, config[:])
}

// ExtraAccountMetas returns the keylet for the hook metadata list of a mint.
func ExtraAccountMetas(mint [32]byte) Keylet {
	return derive(entry.TypeExtraAccountMetaList, HookProgramID, seedExtraAccountMetas, mint[:])
}

// DelegateSeeds returns the derivation seeds of the hook delegate, without bump.
func DelegateSeeds() [][]byte {
	return [][]byte{seedDelegate}
}

// Delegate returns the keylet of the hook's fee delegate authority.
func Delegate() Keylet {
	return derive(entry.TypeAuthority, HookProgramID, DelegateSeeds()...)
}

// Mint returns the keylet for a mint at a caller-chosen address.
func Mint(address [32]byte) Keylet {
	return Keylet{Type: entry.TypeMint, Key: address}
}

// TokenAccount returns the keylet for the associated account of owner for mint.
func TokenAccount(owner, mint [32]byte) Keylet {
	addr, bump, err := solana.FindAssociatedTokenAddress(solana.PublicKeyFromBytes(owner[:]), solana.PublicKeyFromBytes(mint[:]))
	if err != nil {
		panic(fmt.Sprintf("keylet: associated account: %v", err))
	}
	return Keylet{Type: entry.TypeTokenAccount, Key: addr, Bump: bump}
}

// Vault returns the custody account a pool uses for mint. The native side
// asset lives at the pool's side vault; any other mint at the pool's
// associated account.
func Vault(config, mint [32]byte) Keylet {
	if mint == NativeMint {
		return SideVault(config)
	}
	return TokenAccount(config, mint)
}

// Authority wraps a key that signs but holds no record.
func Authority(address [32]byte) Keylet {
	return Keylet{Type: entry.TypeAuthority, Key: address}
}

// AccountAt returns the keylet of a token account at a known address.
func AccountAt(address [32]byte) Keylet {
	return Keylet{Type: entry.TypeTokenAccount, Key: address}
}
