package amm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
	"github.com/LeJamon/goAMMd/internal/testing/amm"
)

func TestPoolInitialize(t *testing.T) {
	t.Run("CreatesConfigMintAndVaults", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		result := env.Submit(amm.PoolInit(env.Alice, 1, env.USD, env.EUR).Fee(30).Authority(env.Authority).Build())
		jtx.RequireTxSuccess(t, result)

		config := keylet.Config(1)
		require.True(t, env.Exists(config))
		require.True(t, env.Exists(keylet.Vault(config.Key, env.USD)))
		require.True(t, env.Exists(keylet.Vault(config.Key, env.EUR)))

		lp, err := token.New(env.View(), nil).Mint(keylet.LPMint(config.Key))
		require.NoError(t, err)
		assert.Equal(t, uint8(6), lp.Decimals)
		assert.True(t, lp.IsAuthority(config.Address()), "pool config must be the LP mint authority")

		state := env.Pool(1)
		assert.Equal(t, uint16(30), state.FeeBps)
		assert.False(t, state.Locked)
		require.NotNil(t, state.Authority)
		assert.Equal(t, env.Authority.Address, *state.Authority)
		assert.Zero(t, state.ReserveA)
		assert.Zero(t, state.ReserveB)
		assert.Zero(t, state.LPSupply)
		assert.Equal(t, 4, result.Metadata.Count("CreatedNode"), "config, LP mint and two vaults")
	})

	t.Run("FeeBoundary", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		jtx.RequireTxSuccess(t, env.Submit(amm.PoolInit(env.Alice, 1, env.USD, env.EUR).Fee(curve.BasisPointMax).Build()))

		result := env.Submit(amm.PoolInit(env.Alice, 2, env.USD, env.EUR).Fee(curve.BasisPointMax + 1).Build())
		amm.ExpectTER(t, result, tx.TemINVALID_FEE)
		require.False(t, env.Exists(keylet.Config(2)))
	})

	t.Run("DuplicateSeed", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.MustSubmit(amm.PoolInit(env.Alice, 1, env.USD, env.EUR).Build())

		result := env.Submit(amm.PoolInit(env.Bob, 1, env.EUR, env.USD).Build())
		amm.ExpectTER(t, result, tx.TecDUPLICATE)
		assert.Equal(t, env.USD, env.Pool(1).MintA)
	})

	t.Run("SameMint", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		call := amm.PoolInit(env.Alice, 1, env.USD, env.USD).Build()
		require.Error(t, call.Validate())

		jtx.RequireUnchanged(t, env.TestEnv, func() {
			amm.ExpectTER(t, env.Submit(call), tx.TemMALFORMED)
		})
	})

	t.Run("UnknownMint", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		result := env.Submit(amm.PoolInit(env.Alice, 1, jtx.MintAddress("nope"), env.USD).Build())
		amm.ExpectTER(t, result, tx.TecINVALID_TOKEN)
		require.False(t, env.Exists(keylet.Config(1)))
	})

	t.Run("NativeSideVault", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.MustSubmit(amm.PoolInit(env.Alice, 1, keylet.NativeMint, env.USD).Build())

		config := keylet.Config(1)
		vault, err := token.New(env.View(), nil).Account(keylet.SideVault(config.Key))
		require.NoError(t, err)
		assert.Equal(t, keylet.SideVault(config.Key).Address(), vault.Owner, "native vault owns itself")

		usdVault, err := token.New(env.View(), nil).Account(keylet.Vault(config.Key, env.USD))
		require.NoError(t, err)
		assert.Equal(t, config.Address(), usdVault.Owner)
	})
}

func TestPoolSetLock(t *testing.T) {
	t.Run("LockedPoolRejectsTrading", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		jtx.RequireTxSuccess(t, env.Submit(amm.Lock(env.Authority, amm.DefaultSeed)))
		require.True(t, env.Pool(amm.DefaultSeed).Locked)

		jtx.RequireUnchanged(t, env.TestEnv, func() {
			amm.ExpectTER(t, env.Submit(amm.Deposit(env.Bob, amm.DefaultSeed, 100, 100).Build()), tx.TecPOOL_LOCKED)
			amm.ExpectTER(t, env.Submit(amm.SwapAToB(env.Bob, amm.DefaultSeed, 100).Build()), tx.TecPOOL_LOCKED)
			amm.ExpectTER(t, env.Submit(amm.Withdraw(env.Alice, amm.DefaultSeed, 100).Build()), tx.TecPOOL_LOCKED)
		})

		jtx.RequireTxSuccess(t, env.Submit(amm.Unlock(env.Authority, amm.DefaultSeed)))
		jtx.RequireTxSuccess(t, env.Submit(amm.SwapAToB(env.Bob, amm.DefaultSeed, 100).Build()))
	})

	t.Run("OnlyAuthority", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupPool(30)

		amm.ExpectTER(t, env.Submit(amm.Lock(env.Bob, amm.DefaultSeed)), tx.TecINVALID_AUTHORITY)
		require.False(t, env.Pool(amm.DefaultSeed).Locked)
	})

	t.Run("NoAuthoritySet", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.MustSubmit(amm.PoolInit(env.Alice, 3, env.USD, env.EUR).Build())

		amm.ExpectTER(t, env.Submit(amm.Lock(env.Alice, 3)), tx.TecNO_AUTHORITY_SET)
		amm.ExpectTER(t, env.Submit(amm.Unlock(env.Alice, 3)), tx.TecNO_AUTHORITY_SET)
	})
}
