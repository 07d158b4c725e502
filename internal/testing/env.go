package testing

import (
	"context"
	"encoding/hex"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/LeJamon/goAMMd/internal/core/ledger"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/amm"
	"github.com/LeJamon/goAMMd/internal/core/tx/asset"
	"github.com/LeJamon/goAMMd/internal/core/tx/hook"
)

// NativeDecimals is the precision of the native side asset.
const NativeDecimals = 9

// TestEnv manages a test ledger environment for transaction testing.
// It provides a simplified interface for creating mints, funding
// accounts, submitting transactions, and verifying results.
type TestEnv struct {
	t      *testing.T
	view   *ledger.Memory
	engine *tx.Engine
	hooks  tx.Hooks

	// issuer is the mint authority of the native mint and of mints
	// created without an explicit authority.
	issuer *Account
}

// NewTestEnv creates a test environment with the fee hook registered and
// the native mint created.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithHooks(t, hook.Registry())
}

// NewTestEnvWithHooks creates a test environment resolving transfer hooks
// through hooks.
func NewTestEnvWithHooks(t *testing.T, hooks tx.Hooks) *TestEnv {
	t.Helper()

	view := ledger.NewMemory()
	env := &TestEnv{
		t:      t,
		view:   view,
		engine: tx.NewEngine(view, tx.EngineConfig{Hooks: hooks}),
		hooks:  hooks,
		issuer: NewAccount("issuer"),
	}
	create := asset.NewCreateMint(env.issuer.Address, keylet.NativeMint, NativeDecimals)
	if r := env.Submit(create); !r.Success {
		t.Fatalf("Failed to create native mint: %s", r.Message)
	}
	return env
}

// Engine returns the engine transactions are applied with.
func (e *TestEnv) Engine() *tx.Engine {
	return e.engine
}

// View returns the committed ledger.
func (e *TestEnv) View() tx.LedgerView {
	return e.view
}

// Hooks returns the registered transfer hooks.
func (e *TestEnv) Hooks() tx.Hooks {
	return e.hooks
}

// Issuer returns the default mint authority.
func (e *TestEnv) Issuer() *Account {
	return e.issuer
}

// Submit applies a transaction and returns its result.
func (e *TestEnv) Submit(txn tx.Transaction) TxResult {
	e.t.Helper()
	return newTxResult(e.engine.Apply(context.Background(), txn))
}

// SubmitBatch applies transactions concurrently.
func (e *TestEnv) SubmitBatch(txns ...tx.Transaction) []TxResult {
	e.t.Helper()
	res := e.engine.ApplyBatch(context.Background(), txns)
	out := make([]TxResult, len(res))
	for i, r := range res {
		out[i] = newTxResult(r)
	}
	return out
}

// MustSubmit applies a transaction and fails the test unless it succeeds.
func (e *TestEnv) MustSubmit(txn tx.Transaction) {
	e.t.Helper()
	if r := e.Submit(txn); !r.Success {
		e.t.Fatalf("%s failed: %s (%s)", txn.TxType(), r.Code, r.Message)
	}
}

// MintAddress returns the address NewMint uses for name.
func MintAddress(name string) solana.PublicKey {
	return NewAccount("mint:" + name).Address
}

// NewMint creates a mint owned by authority.
func (e *TestEnv) NewMint(name string, authority *Account, decimals uint8) solana.PublicKey {
	e.t.Helper()
	addr := MintAddress(name)
	e.MustSubmit(asset.NewCreateMint(authority.Address, addr, decimals))
	return addr
}

// NewHookedMint creates a mint whose transfers run the fee hook, and
// writes the hook's account list for it.
func (e *TestEnv) NewHookedMint(name string, authority *Account, decimals uint8) solana.PublicKey {
	e.t.Helper()
	addr := MintAddress(name)
	create := asset.NewCreateMint(authority.Address, addr, decimals)
	program := keylet.HookProgramID
	create.TransferHookProgram = &program
	e.MustSubmit(create)
	e.MustSubmit(hook.NewInitializeExtraAccountMetaList(authority.Address, addr))
	return addr
}

// OpenAccount creates the associated account of owner for mint.
func (e *TestEnv) OpenAccount(owner *Account, mint solana.PublicKey) {
	e.t.Helper()
	e.MustSubmit(asset.NewCreateAccount(owner.Address, owner.Address, mint))
}

// Fund mints amount of mint to owner. The mint must have been created by
// NewMint with the env issuer, or be the native mint.
func (e *TestEnv) Fund(mint solana.PublicKey, owner *Account, amount uint64) {
	e.t.Helper()
	e.FundFrom(e.issuer, mint, owner, amount)
}

// FundFrom mints amount of mint to owner, signed by authority.
func (e *TestEnv) FundFrom(authority *Account, mint solana.PublicKey, owner *Account, amount uint64) {
	e.t.Helper()
	e.MustSubmit(asset.NewMintTo(authority.Address, mint, owner.Address, amount))
}

// FundNative mints amount of the native side asset to each account.
func (e *TestEnv) FundNative(amount uint64, owners ...*Account) {
	e.t.Helper()
	for _, o := range owners {
		e.Fund(keylet.NativeMint, o, amount)
	}
}

// ApproveHookFees lets the hook delegate collect up to amount of fees
// from owner's native account.
func (e *TestEnv) ApproveHookFees(owner *Account, amount uint64) {
	e.t.Helper()
	e.MustSubmit(asset.NewApprove(owner.Address, keylet.NativeMint, keylet.Delegate().Address(), amount))
}

// Balance returns the amount owner holds of mint in its associated
// account, or zero when the account does not exist.
func (e *TestEnv) Balance(owner, mint solana.PublicKey) uint64 {
	e.t.Helper()
	return e.AccountBalance(keylet.TokenAccount(owner, mint))
}

// AccountBalance returns the amount held by a token account, or zero
// when it does not exist.
func (e *TestEnv) AccountBalance(k keylet.Keylet) uint64 {
	e.t.Helper()
	n, err := token.New(e.view, nil).Balance(k)
	if tx.ResultOf(err) == tx.TecNO_ENTRY {
		return 0
	}
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", k, err)
	}
	return n
}

// Supply returns the total supply of mint.
func (e *TestEnv) Supply(mint solana.PublicKey) uint64 {
	e.t.Helper()
	m, err := token.New(e.view, nil).Mint(keylet.Mint(mint))
	if err != nil {
		e.t.Fatalf("Failed to read mint %s: %v", mint, err)
	}
	return m.Supply
}

// Exists reports whether a record exists.
func (e *TestEnv) Exists(k keylet.Keylet) bool {
	e.t.Helper()
	ok, err := e.view.Exists(k)
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", k, err)
	}
	return ok
}

// Pool returns the state of the pool with the given seed.
func (e *TestEnv) Pool(seed uint64) *amm.PoolState {
	e.t.Helper()
	s, err := amm.ReadPool(e.view, seed)
	if err != nil {
		e.t.Fatalf("Failed to read pool %d: %v", seed, err)
	}
	return s
}

// Snapshot returns every record of the ledger keyed by hex address.
func (e *TestEnv) Snapshot() map[string]string {
	e.t.Helper()
	out := make(map[string]string, e.view.Len())
	err := e.view.ForEach(func(key [32]byte, data []byte) bool {
		out[hex.EncodeToString(key[:])] = hex.EncodeToString(data)
		return true
	})
	if err != nil {
		e.t.Fatalf("Failed to walk ledger: %v", err)
	}
	return out
}

// Trace runs txn against a scratch table without committing and returns
// its declared footprint together with every key it touched.
func (e *TestEnv) Trace(txn tx.Transaction) (*tx.Footprint, map[[32]byte]bool, tx.Result) {
	e.t.Helper()
	account := txn.GetCommon().Account
	fp, err := txn.Footprint(&tx.FootprintContext{View: e.view, Hooks: e.hooks, Account: account})
	if err != nil {
		e.t.Fatalf("%s footprint: %v", txn.TxType(), err)
	}
	table := tx.NewApplyStateTable(e.view, nil)
	result := txn.Apply(&tx.ApplyContext{
		View:    table,
		Account: account,
		Hooks:   e.hooks,
		Logger:  zap.NewNop(),
	})
	return fp, table.Touched(), result
}
