package hook_test

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/asset"
	"github.com/LeJamon/goAMMd/internal/core/tx/hook"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
)

func TestFee(t *testing.T) {
	tests := []struct {
		amount, fee uint64
	}{
		{0, 0},
		{999, 0},
		{1_000, 1},
		{1_999, 1},
		{500_000, 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.fee, hook.Fee(tt.amount), "amount %d", tt.amount)
	}
}

func TestInitializeExtraAccountMetaList(t *testing.T) {
	t.Run("WritesListAndDelegateAccount", func(t *testing.T) {
		env := jtx.NewTestEnv(t)
		mint := env.NewHookedMint("gold", env.Issuer(), 9)

		assert.True(t, env.Exists(keylet.ExtraAccountMetas(mint)))
		assert.True(t, env.Exists(keylet.TokenAccount(keylet.Delegate().Key, keylet.NativeMint)))
	})

	t.Run("OncePerMint", func(t *testing.T) {
		env := jtx.NewTestEnv(t)
		mint := env.NewHookedMint("gold", env.Issuer(), 9)

		r := env.Submit(hook.NewInitializeExtraAccountMetaList(env.Issuer().Address, mint))
		jtx.RequireTxFail(t, r, tx.TecDUPLICATE)
	})

	t.Run("UnknownMint", func(t *testing.T) {
		env := jtx.NewTestEnv(t)
		r := env.Submit(hook.NewInitializeExtraAccountMetaList(env.Issuer().Address, jtx.MintAddress("ghost")))
		jtx.RequireTxFail(t, r, tx.TecINVALID_TOKEN)
	})

	t.Run("ZeroMint", func(t *testing.T) {
		env := jtx.NewTestEnv(t)
		r := env.Submit(hook.NewInitializeExtraAccountMetaList(env.Issuer().Address, keylet.Keylet{}.Address()))
		jtx.RequireTxFail(t, r, tx.TemMALFORMED)
	})
}

func TestFeeHookAccounts(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	mint := env.NewHookedMint("gold", env.Issuer(), 9)

	exec := tx.HookExecution{
		Source:      keylet.TokenAccount(alice.Address, mint).Address(),
		Mint:        mint,
		Destination: keylet.TokenAccount(env.Issuer().Address, mint).Address(),
		Owner:       alice.Address,
		Amount:      5_000,
	}
	reads, writes, err := hook.FeeHook{}.Accounts(env.View(), exec)
	require.NoError(t, err)
	assert.Contains(t, reads, keylet.ExtraAccountMetas(mint))
	assert.Contains(t, reads, keylet.Mint(keylet.NativeMint))

	want := []keylet.Keylet{
		keylet.AccountAt(keylet.TokenAccount(keylet.Delegate().Key, keylet.NativeMint).Key),
		keylet.AccountAt(keylet.TokenAccount(alice.Address, keylet.NativeMint).Key),
	}
	assert.Equal(t, want, writes)

	// Without a list only the list itself is read.
	exec.Mint = jtx.MintAddress("plain")
	reads, writes, err = hook.FeeHook{}.Accounts(env.View(), exec)
	require.NoError(t, err)
	assert.Equal(t, []keylet.Keylet{keylet.ExtraAccountMetas(exec.Mint)}, reads)
	assert.Empty(t, writes)
}

func TestFeeHookTransfer(t *testing.T) {
	setup := func(t *testing.T) (*jtx.TestEnv, *jtx.Account, *jtx.Account, solana.PublicKey) {
		env := jtx.NewTestEnv(t)
		alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
		mint := env.NewHookedMint("gold", env.Issuer(), 9)
		env.Fund(mint, alice, 100_000)
		env.FundNative(1_000, alice)
		env.OpenAccount(bob, mint)
		return env, alice, bob, mint
	}

	t.Run("CollectsFee", func(t *testing.T) {
		env, alice, bob, mint := setup(t)
		env.ApproveHookFees(alice, 100)

		jtx.RequireTxSuccess(t, env.Submit(asset.NewTransfer(alice.Address, mint, bob.Address, 50_000)))

		jtx.RequireBalance(t, env, bob, mint, 50_000)
		jtx.RequireBalance(t, env, alice, keylet.NativeMint, 950)
		assert.Equal(t, uint64(50), env.Balance(keylet.Delegate().Address(), keylet.NativeMint))
	})

	t.Run("RequiresApproval", func(t *testing.T) {
		env, alice, bob, mint := setup(t)
		jtx.RequireUnchanged(t, env, func() {
			r := env.Submit(asset.NewTransfer(alice.Address, mint, bob.Address, 50_000))
			jtx.RequireTxFail(t, r, tx.TecINVALID_AUTHORITY)
		})
	})

	t.Run("SpendsAllowance", func(t *testing.T) {
		env, alice, bob, mint := setup(t)
		env.ApproveHookFees(alice, 60)

		env.MustSubmit(asset.NewTransfer(alice.Address, mint, bob.Address, 50_000))
		r := env.Submit(asset.NewTransfer(alice.Address, mint, bob.Address, 50_000))
		jtx.RequireTxFail(t, r, tx.TecINSUFFICIENT_BALANCE)
		jtx.RequireBalance(t, env, bob, mint, 50_000)
	})

	t.Run("NoSideAccount", func(t *testing.T) {
		env := jtx.NewTestEnv(t)
		alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
		mint := env.NewHookedMint("gold", env.Issuer(), 9)
		env.Fund(mint, alice, 100_000)
		env.OpenAccount(bob, mint)

		r := env.Submit(asset.NewTransfer(alice.Address, mint, bob.Address, 50_000))
		jtx.RequireTxFail(t, r, tx.TecNO_ENTRY)
	})
}
