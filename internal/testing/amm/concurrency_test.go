package amm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
	"github.com/LeJamon/goAMMd/internal/testing/amm"
)

// requireDeclared checks that every key a call touched was declared with
// the access it needed.
func requireDeclared(t *testing.T, fp *tx.Footprint, touched map[[32]byte]bool) {
	t.Helper()
	for key, written := range touched {
		if written {
			require.True(t, fp.CanWrite(key), "undeclared write of %x", key[:4])
		} else {
			require.True(t, fp.CanRead(key), "undeclared read of %x", key[:4])
		}
	}
}

func TestFootprintsCoverTouchedRecords(t *testing.T) {
	env := amm.NewAMMTestEnv(t)
	env.SetupFundedPool(30, 1_000_000, 1_000_000)
	dave := jtx.NewAccount("dave")
	env.TestEnv.Fund(env.USD, dave, 5_000)

	calls := []tx.Transaction{
		amm.Deposit(env.Bob, amm.DefaultSeed, 10_000, 10_000).Build(),
		amm.SwapAToB(dave, amm.DefaultSeed, 5_000).Build(),
		amm.SwapBToA(env.Carol, amm.DefaultSeed, 5_000).Build(),
		amm.Withdraw(env.Alice, amm.DefaultSeed, 1_000_000).Build(),
		amm.Lock(env.Authority, amm.DefaultSeed),
		amm.PoolInit(env.Bob, 99, env.EUR, env.USD).Build(),
	}
	for _, call := range calls {
		t.Run(call.TxType().String(), func(t *testing.T) {
			fp, touched, result := env.Trace(call)
			require.Equal(t, tx.TesSUCCESS, result)
			require.NotEmpty(t, touched)
			requireDeclared(t, fp, touched)
		})
	}
}

func TestConcurrentSwapsConserveBalances(t *testing.T) {
	env := amm.NewAMMTestEnv(t)
	env.SetupFundedPool(30, 1_000_000, 1_000_000)
	product := env.Curve(amm.DefaultSeed).Invariant()

	var calls []tx.Transaction
	for i := 0; i < 60; i++ {
		switch i % 3 {
		case 0:
			calls = append(calls, amm.SwapAToB(env.Bob, amm.DefaultSeed, 1_000).Build())
		case 1:
			calls = append(calls, amm.SwapBToA(env.Carol, amm.DefaultSeed, 1_500).Build())
		default:
			calls = append(calls, amm.Deposit(env.Alice, amm.DefaultSeed, 2_000, 2_000).Max(3_000, 3_000).Build())
		}
	}
	for i, r := range env.SubmitBatch(calls...) {
		require.True(t, r.Success, "call %d: %s %s", i, r.Code, r.Message)
	}

	config := keylet.Config(amm.DefaultSeed)
	for _, mint := range []struct {
		name  string
		mint  [32]byte
		vault keylet.Keylet
	}{
		{"usd", env.USD, keylet.Vault(config.Key, env.USD)},
		{"eur", env.EUR, keylet.Vault(config.Key, env.EUR)},
	} {
		var total uint64
		for _, acc := range []*jtx.Account{env.Alice, env.Bob, env.Carol} {
			total += env.Balance(acc.Address, mint.mint)
		}
		total += env.AccountBalance(mint.vault)
		assert.Equal(t, uint64(30_000_000), total, "%s not conserved", mint.name)
	}
	assert.GreaterOrEqual(t, env.Curve(amm.DefaultSeed).Invariant().Cmp(product), 0)
}

// Calls on disjoint pools commute, so a concurrent batch must leave the
// ledger exactly as sequential application does.
func TestBatchMatchesSequential(t *testing.T) {
	build := func(t *testing.T) (*amm.AMMTestEnv, []tx.Transaction) {
		env := amm.NewAMMTestEnv(t)
		env.Fund(10_000_000)
		env.MustSubmit(amm.PoolInit(env.Authority, 1, env.USD, env.EUR).Build())
		env.MustSubmit(amm.PoolInit(env.Authority, 2, env.EUR, env.USD).Build())
		env.MustSubmit(amm.Deposit(env.Alice, 1, 1_000_000, 1_000_000).Build())
		env.MustSubmit(amm.Deposit(env.Alice, 2, 2_000_000, 1_000_000).Build())

		var calls []tx.Transaction
		for i := 0; i < 10; i++ {
			calls = append(calls,
				amm.SwapAToB(env.Bob, 1, 3_000).Build(),
				amm.SwapBToA(env.Carol, 2, 5_000).Build(),
			)
		}
		return env, calls
	}

	seq, calls := build(t)
	for _, c := range calls {
		seq.MustSubmit(c)
	}

	par, calls := build(t)
	for i, r := range par.SubmitBatch(calls...) {
		require.True(t, r.Success, "call %d: %s", i, r.Code)
	}

	require.Equal(t, seq.Snapshot(), par.Snapshot())
}
