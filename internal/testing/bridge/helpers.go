// Package bridge provides test helpers for bridge pools: a pool trading
// the bridge mint of a hooked, restricted asset against the native asset.
package bridge

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	coreAmm "github.com/LeJamon/goAMMd/internal/core/tx/amm"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
	"github.com/LeJamon/goAMMd/internal/testing/amm"
)

// Seed is the seed of the bridge pool.
const Seed = 42

// Starting balances given by Fund.
const (
	NativeFunding     = 10_000_000
	RestrictedFunding = 1_000_000
)

// BridgeTestEnv wraps TestEnv with bridge helpers.
type BridgeTestEnv struct {
	*jtx.TestEnv
	T *testing.T

	Authority *jtx.Account
	Alice     *jtx.Account
	Bob       *jtx.Account

	// Restricted is a mint whose transfers run the fee hook.
	Restricted solana.PublicKey
	// BridgeMint is the free proxy of Restricted issued by the pool's bridge.
	BridgeMint solana.PublicKey
}

// NewBridgeTestEnv creates the environment with the standard fee hook.
func NewBridgeTestEnv(t *testing.T) *BridgeTestEnv {
	t.Helper()
	return newBridgeTestEnv(t, jtx.NewTestEnv(t))
}

// NewBridgeTestEnvWithHooks creates the environment resolving the
// restricted mint's hook through hooks.
func NewBridgeTestEnvWithHooks(t *testing.T, hooks tx.Hooks) *BridgeTestEnv {
	t.Helper()
	return newBridgeTestEnv(t, jtx.NewTestEnvWithHooks(t, hooks))
}

func newBridgeTestEnv(t *testing.T, env *jtx.TestEnv) *BridgeTestEnv {
	t.Helper()
	return &BridgeTestEnv{
		TestEnv:    env,
		T:          t,
		Authority:  jtx.NewAccount("authority"),
		Alice:      jtx.NewAccount("alice"),
		Bob:        jtx.NewAccount("bob"),
		Restricted: env.NewHookedMint("restricted", env.Issuer(), 9),
		BridgeMint: keylet.BridgeMint(keylet.Config(Seed).Key).Address(),
	}
}

// Fund gives alice and bob native and restricted balances.
func (e *BridgeTestEnv) Fund() {
	e.T.Helper()
	e.FundNative(NativeFunding, e.Alice, e.Bob)
	for _, acc := range []*jtx.Account{e.Alice, e.Bob} {
		e.TestEnv.Fund(e.Restricted, acc, RestrictedFunding)
	}
}

// SetupPool funds the accounts and creates the bridge-mint/native pool
// without its bridge.
func (e *BridgeTestEnv) SetupPool() {
	e.T.Helper()
	e.Fund()
	e.MustSubmit(amm.PoolInit(e.Authority, Seed, e.BridgeMint, keylet.NativeMint).Authority(e.Authority).Build())
}

// SetupBridge creates the pool and attaches the bridge.
func (e *BridgeTestEnv) SetupBridge() {
	e.T.Helper()
	e.SetupPool()
	e.MustSubmit(Initialize(e.Authority, Seed, e.Restricted))
}

// Vault returns the bridge vault holding the restricted asset.
func (e *BridgeTestEnv) Vault() keylet.Keylet {
	return keylet.TokenAccount(keylet.BridgeConfig(keylet.Config(Seed).Key).Key, e.Restricted)
}

// DelegateFees returns the fees collected by the hook delegate.
func (e *BridgeTestEnv) DelegateFees() uint64 {
	e.T.Helper()
	return e.Balance(keylet.Delegate().Address(), keylet.NativeMint)
}

// Initialize builds a BridgeInitialize transaction.
func Initialize(account *jtx.Account, seed uint64, restricted solana.PublicKey) *coreAmm.BridgeInitialize {
	return coreAmm.NewBridgeInitialize(account.Address, seed, restricted)
}

// Wrap builds a Wrap transaction on the bridge pool.
func Wrap(account *jtx.Account, amount uint64) *coreAmm.Wrap {
	return coreAmm.NewWrap(account.Address, Seed, amount)
}

// Unwrap builds an Unwrap transaction on the bridge pool.
func Unwrap(account *jtx.Account, amount uint64) *coreAmm.Unwrap {
	return coreAmm.NewUnwrap(account.Address, Seed, amount)
}
