package keylet

import (
	"testing"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigIsDeterministic(t *testing.T) {
	a := Config(42)
	b := Config(42)
	c := Config(43)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Key, c.Key)
	assert.Equal(t, entry.TypePoolConfig, a.Type)
}

func TestDerivedKeysMatchBump(t *testing.T) {
	cfg := Config(7)

	seeds := append(ConfigSeeds(7), []byte{cfg.Bump})
	addr, err := solana.CreateProgramAddress(seeds, ProgramID)
	require.NoError(t, err)
	assert.Equal(t, cfg.Address(), addr)

	bridge := BridgeConfig(cfg.Key)
	seeds = append(BridgeConfigSeeds(cfg.Key), []byte{bridge.Bump})
	addr, err = solana.CreateProgramAddress(seeds, ProgramID)
	require.NoError(t, err)
	assert.Equal(t, bridge.Address(), addr)

	delegate := Delegate()
	seeds = append(DelegateSeeds(), []byte{delegate.Bump})
	addr, err = solana.CreateProgramAddress(seeds, HookProgramID)
	require.NoError(t, err)
	assert.Equal(t, delegate.Address(), addr)
}

func TestPoolAddressesAreDistinct(t *testing.T) {
	cfg := Config(1).Key
	keys := map[[32]byte]string{
		cfg:                   "config",
		LPMint(cfg).Key:       "lp",
		SideVault(cfg).Key:    "side vault",
		BridgeConfig(cfg).Key: "bridge config",
		BridgeMint(cfg).Key:   "bridge mint",
	}
	assert.Len(t, keys, 5)
}

func TestVault(t *testing.T) {
	cfg := Config(9).Key
	mint := solana.NewWallet().PublicKey()

	assert.Equal(t, SideVault(cfg).Key, Vault(cfg, NativeMint).Key)
	assert.Equal(t, TokenAccount(cfg, mint).Key, Vault(cfg, mint).Key)

	ata, _, err := solana.FindAssociatedTokenAddress(solana.PublicKeyFromBytes(cfg[:]), mint)
	require.NoError(t, err)
	assert.Equal(t, ata, Vault(cfg, mint).Address())
}

func TestExtraAccountMetasPerMint(t *testing.T) {
	m1 := solana.NewWallet().PublicKey()
	m2 := solana.NewWallet().PublicKey()

	assert.NotEqual(t, ExtraAccountMetas(m1).Key, ExtraAccountMetas(m2).Key)
	assert.Equal(t, entry.TypeExtraAccountMetaList, ExtraAccountMetas(m1).Type)
	assert.False(t, Delegate().Type.HasRecord())
}
