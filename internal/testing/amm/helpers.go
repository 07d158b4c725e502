package amm

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
)

// DefaultFeeBps is the fee used by pools built without an explicit fee.
const DefaultFeeBps = 30

// DefaultSeed is the seed of the pool created by SetupPool.
const DefaultSeed = 7

// AMMTestEnv wraps TestEnv with pool helpers.
type AMMTestEnv struct {
	*jtx.TestEnv
	T *testing.T

	Authority *jtx.Account // pool authority
	Alice     *jtx.Account
	Bob       *jtx.Account
	Carol     *jtx.Account

	USD solana.PublicKey
	EUR solana.PublicKey
}

// NewAMMTestEnv creates an environment with two 6-decimal mints and
// standard accounts.
func NewAMMTestEnv(t *testing.T) *AMMTestEnv {
	t.Helper()

	env := jtx.NewTestEnv(t)
	return &AMMTestEnv{
		TestEnv:   env,
		T:         t,
		Authority: jtx.NewAccount("authority"),
		Alice:     jtx.NewAccount("alice"),
		Bob:       jtx.NewAccount("bob"),
		Carol:     jtx.NewAccount("carol"),
		USD:       env.NewMint("usd", env.Issuer(), 6),
		EUR:       env.NewMint("eur", env.Issuer(), 6),
	}
}

// Fund gives alice, bob and carol amount of both mints.
func (e *AMMTestEnv) Fund(amount uint64) {
	e.T.Helper()
	for _, acc := range []*jtx.Account{e.Alice, e.Bob, e.Carol} {
		e.TestEnv.Fund(e.USD, acc, amount)
		e.TestEnv.Fund(e.EUR, acc, amount)
	}
}

// SetupPool funds the accounts and creates an empty USD/EUR pool at
// DefaultSeed owned by the authority.
func (e *AMMTestEnv) SetupPool(feeBps uint16) {
	e.T.Helper()
	e.Fund(10_000_000)
	e.MustSubmit(PoolInit(e.Authority, DefaultSeed, e.USD, e.EUR).Fee(feeBps).Authority(e.Authority).Build())
}

// SetupFundedPool creates the pool and has alice deposit amountA/amountB.
func (e *AMMTestEnv) SetupFundedPool(feeBps uint16, amountA, amountB uint64) {
	e.T.Helper()
	e.SetupPool(feeBps)
	e.MustSubmit(Deposit(e.Alice, DefaultSeed, amountA, amountB).Build())
}

// LPMint returns the LP mint of the pool at seed.
func LPMint(seed uint64) solana.PublicKey {
	return keylet.LPMint(keylet.Config(seed).Key).Address()
}

// Reserves returns the vault balances of the pool at seed.
func (e *AMMTestEnv) Reserves(seed uint64) (a, b uint64) {
	e.T.Helper()
	s := e.Pool(seed)
	return s.ReserveA, s.ReserveB
}

// Curve returns the curve over the current reserves of the pool at seed.
func (e *AMMTestEnv) Curve(seed uint64) *curve.ConstantProduct {
	e.T.Helper()
	s := e.Pool(seed)
	c, err := curve.NewConstantProduct(s.ReserveA, s.ReserveB, s.LPSupply, s.FeeBps, curve.DefaultPrecision)
	if err != nil {
		e.T.Fatalf("Failed to build curve: %v", err)
	}
	return c
}

// ExpectTER fails the test unless result carries the expected code.
func ExpectTER(t *testing.T, result jtx.TxResult, expected tx.Result) {
	t.Helper()
	if result.Code != expected.String() {
		t.Fatalf("Expected %s, got %s: %s", expected, result.Code, result.Message)
	}
}
