package asset_test

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/asset"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
)

func TestCreateMint(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := env.Issuer()
	addr := jtx.MintAddress("usd")

	jtx.RequireTxSuccess(t, env.Submit(asset.NewCreateMint(issuer.Address, addr, 6)))

	m, err := token.New(env.View(), nil).Mint(keylet.Mint(addr))
	require.NoError(t, err)
	assert.Equal(t, uint8(6), m.Decimals)
	assert.True(t, m.IsAuthority(issuer.Address))
	assert.False(t, m.HasTransferHook)

	jtx.RequireTxFail(t, env.Submit(asset.NewCreateMint(issuer.Address, addr, 6)), tx.TecDUPLICATE)
	jtx.RequireTxFail(t, env.Submit(asset.NewCreateMint(issuer.Address, keylet.Keylet{}.Address(), 6)), tx.TemMALFORMED)
}

func TestMintTo(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	usd := env.NewMint("usd", env.Issuer(), 6)

	t.Run("OpensDestination", func(t *testing.T) {
		jtx.RequireTxSuccess(t, env.Submit(asset.NewMintTo(env.Issuer().Address, usd, alice.Address, 700)))
		jtx.RequireBalance(t, env, alice, usd, 700)
		jtx.RequireSupply(t, env, usd, 700)
	})

	t.Run("NotAuthority", func(t *testing.T) {
		r := env.Submit(asset.NewMintTo(alice.Address, usd, alice.Address, 1))
		jtx.RequireTxFail(t, r, tx.TecINVALID_AUTHORITY)
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		r := env.Submit(asset.NewMintTo(env.Issuer().Address, usd, alice.Address, 0))
		jtx.RequireTxFail(t, r, tx.TemINVALID_AMOUNT)
	})

	t.Run("UnknownMint", func(t *testing.T) {
		r := env.Submit(asset.NewMintTo(env.Issuer().Address, jtx.MintAddress("ghost"), alice.Address, 1))
		jtx.RequireTxFail(t, r, tx.TecINVALID_TOKEN)
	})
}

func TestCreateAccount(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
	usd := env.NewMint("usd", env.Issuer(), 6)

	// Anyone may open an account on behalf of another owner.
	jtx.RequireTxSuccess(t, env.Submit(asset.NewCreateAccount(alice.Address, bob.Address, usd)))
	a, err := token.New(env.View(), nil).Account(keylet.TokenAccount(bob.Address, usd))
	require.NoError(t, err)
	assert.Equal(t, bob.Address, a.Owner)

	jtx.RequireTxSuccess(t, env.Submit(asset.NewCreateAccount(alice.Address, keylet.Keylet{}.Address(), usd)))
	assert.True(t, env.Exists(keylet.TokenAccount(alice.Address, usd)))

	jtx.RequireTxFail(t, env.Submit(asset.NewCreateAccount(alice.Address, bob.Address, usd)), tx.TecDUPLICATE)
}

func TestTransfer(t *testing.T) {
	setup := func(t *testing.T) (*jtx.TestEnv, *jtx.Account, *jtx.Account, solana.PublicKey) {
		env := jtx.NewTestEnv(t)
		alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
		usd := env.NewMint("usd", env.Issuer(), 6)
		env.Fund(usd, alice, 1_000)
		return env, alice, bob, usd
	}

	t.Run("MovesBalance", func(t *testing.T) {
		env, alice, bob, usd := setup(t)
		env.OpenAccount(bob, usd)

		jtx.RequireTxSuccess(t, env.Submit(asset.NewTransfer(alice.Address, usd, bob.Address, 400)))
		jtx.RequireBalance(t, env, alice, usd, 600)
		jtx.RequireBalance(t, env, bob, usd, 400)
		jtx.RequireSupply(t, env, usd, 1_000)
	})

	t.Run("DestinationMustExist", func(t *testing.T) {
		env, alice, bob, usd := setup(t)
		r := env.Submit(asset.NewTransfer(alice.Address, usd, bob.Address, 400))
		jtx.RequireTxFail(t, r, tx.TecNO_ENTRY)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		env, alice, bob, usd := setup(t)
		env.OpenAccount(bob, usd)
		jtx.RequireUnchanged(t, env, func() {
			r := env.Submit(asset.NewTransfer(alice.Address, usd, bob.Address, 1_001))
			jtx.RequireTxFail(t, r, tx.TecINSUFFICIENT_BALANCE)
		})
	})
}

func TestApprove(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
	usd := env.NewMint("usd", env.Issuer(), 6)
	env.Fund(usd, alice, 1_000)

	jtx.RequireTxSuccess(t, env.Submit(asset.NewApprove(alice.Address, usd, bob.Address, 250)))

	a, err := token.New(env.View(), nil).Account(keylet.TokenAccount(alice.Address, usd))
	require.NoError(t, err)
	assert.True(t, a.HasDelegate)
	assert.Equal(t, bob.Address, a.Delegate)
	assert.Equal(t, uint64(250), a.DelegatedAmount)

	// Approving on an account the signer does not hold fails.
	r := env.Submit(asset.NewApprove(bob.Address, usd, alice.Address, 1))
	jtx.RequireTxFail(t, r, tx.TecNO_ENTRY)
}
