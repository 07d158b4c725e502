package amm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
	"github.com/LeJamon/goAMMd/internal/testing/amm"
)

func TestDeposit(t *testing.T) {
	t.Run("BootstrapMintsFixedSupply", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupPool(30)

		result := env.Submit(amm.Deposit(env.Alice, amm.DefaultSeed, 1_000_000, 1_000_000).Build())
		jtx.RequireTxSuccess(t, result)

		lp := amm.LPMint(amm.DefaultSeed)
		jtx.RequireBalance(t, env.TestEnv, env.Alice, lp, curve.BootstrapLPAmount)
		jtx.RequireSupply(t, env.TestEnv, lp, curve.BootstrapLPAmount)
		jtx.RequireBalance(t, env.TestEnv, env.Alice, env.USD, 9_000_000)
		jtx.RequireBalance(t, env.TestEnv, env.Alice, env.EUR, 9_000_000)

		a, b := env.Reserves(amm.DefaultSeed)
		assert.Equal(t, uint64(1_000_000), a)
		assert.Equal(t, uint64(1_000_000), b)
	})

	t.Run("SteadyStateTakesBindingPair", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		jtx.RequireTxSuccess(t, env.Submit(amm.Deposit(env.Bob, amm.DefaultSeed, 100_000, 500_000).Build()))

		jtx.RequireBalance(t, env.TestEnv, env.Bob, env.USD, 9_900_000)
		jtx.RequireBalance(t, env.TestEnv, env.Bob, env.EUR, 9_900_000)
		jtx.RequireBalance(t, env.TestEnv, env.Bob, amm.LPMint(amm.DefaultSeed), 10_000_000_000)
		jtx.RequireSupply(t, env.TestEnv, amm.LPMint(amm.DefaultSeed), 110_000_000_000)
	})

	t.Run("MaximumExceeded", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		jtx.RequireUnchanged(t, env.TestEnv, func() {
			result := env.Submit(amm.Deposit(env.Bob, amm.DefaultSeed, 100, 100).Max(99, 100).Build())
			amm.ExpectTER(t, result, tx.TecSLIPPAGE_EXCEEDED)
		})
	})

	t.Run("NothingOffered", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		amm.ExpectTER(t, env.Submit(amm.Deposit(env.Bob, amm.DefaultSeed, 0, 0).Build()), tx.TemINVALID_AMOUNT)
	})

	t.Run("OneSidedPoolBootstrapsAgain", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupPool(30)

		env.MustSubmit(amm.Deposit(env.Alice, amm.DefaultSeed, 1_000, 0).Build())
		env.MustSubmit(amm.Deposit(env.Bob, amm.DefaultSeed, 500, 500).Build())

		jtx.RequireSupply(t, env.TestEnv, amm.LPMint(amm.DefaultSeed), 2*curve.BootstrapLPAmount)
		a, b := env.Reserves(amm.DefaultSeed)
		assert.Equal(t, uint64(1_500), a)
		assert.Equal(t, uint64(500), b)
	})

	t.Run("UnfundedDepositor", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)
		dave := jtx.NewAccount("dave")
		env.TestEnv.Fund(env.USD, dave, 10)
		env.TestEnv.Fund(env.EUR, dave, 10)

		jtx.RequireUnchanged(t, env.TestEnv, func() {
			result := env.Submit(amm.Deposit(dave, amm.DefaultSeed, 100, 100).Build())
			amm.ExpectTER(t, result, tx.TecINSUFFICIENT_BALANCE)
		})
	})

	t.Run("UnknownPool", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.Fund(100)
		amm.ExpectTER(t, env.Submit(amm.Deposit(env.Bob, 99, 10, 10).Build()), tx.TecNO_ENTRY)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("HalfAfterSwap", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)
		env.MustSubmit(amm.SwapAToB(env.Bob, amm.DefaultSeed, 100_000).Build())

		result := env.Submit(amm.Withdraw(env.Alice, amm.DefaultSeed, curve.BootstrapLPAmount/2).Build())
		jtx.RequireTxSuccess(t, result)

		jtx.RequireBalance(t, env.TestEnv, env.Alice, env.USD, 9_550_000)
		jtx.RequireBalance(t, env.TestEnv, env.Alice, env.EUR, 9_454_669)
		jtx.RequireSupply(t, env.TestEnv, amm.LPMint(amm.DefaultSeed), curve.BootstrapLPAmount/2)

		a, b := env.Reserves(amm.DefaultSeed)
		assert.Equal(t, uint64(550_000), a)
		assert.Equal(t, uint64(454_669), b)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		jtx.RequireTxSuccess(t, env.Submit(amm.Withdraw(env.Alice, amm.DefaultSeed, curve.BootstrapLPAmount).Build()))

		jtx.RequireBalance(t, env.TestEnv, env.Alice, env.USD, 10_000_000)
		jtx.RequireBalance(t, env.TestEnv, env.Alice, env.EUR, 10_000_000)
		jtx.RequireSupply(t, env.TestEnv, amm.LPMint(amm.DefaultSeed), 0)
		a, b := env.Reserves(amm.DefaultSeed)
		assert.Zero(t, a)
		assert.Zero(t, b)
	})

	t.Run("MinimumNotMet", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		jtx.RequireUnchanged(t, env.TestEnv, func() {
			result := env.Submit(amm.Withdraw(env.Alice, amm.DefaultSeed, curve.BootstrapLPAmount/2).Min(500_001, 0).Build())
			amm.ExpectTER(t, result, tx.TecSLIPPAGE_EXCEEDED)
		})
	})

	t.Run("ZeroShares", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)
		amm.ExpectTER(t, env.Submit(amm.Withdraw(env.Alice, amm.DefaultSeed, 0).Build()), tx.TemINVALID_AMOUNT)
	})

	t.Run("MoreThanSupply", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)
		result := env.Submit(amm.Withdraw(env.Alice, amm.DefaultSeed, curve.BootstrapLPAmount+1).Build())
		amm.ExpectTER(t, result, tx.TecCURVE_ERROR)
	})

	t.Run("SharesNotHeld", func(t *testing.T) {
		env := amm.NewAMMTestEnv(t)
		env.SetupFundedPool(30, 1_000_000, 1_000_000)

		jtx.RequireUnchanged(t, env.TestEnv, func() {
			result := env.Submit(amm.Withdraw(env.Bob, amm.DefaultSeed, 1_000).Build())
			require.False(t, result.Success)
			amm.ExpectTER(t, result, tx.TecNO_ENTRY)
		})
	})
}
