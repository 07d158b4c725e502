package testing

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/tx"
)

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s: %s", result.Code, result.Message)
}

// RequireTxFail asserts that a transaction failed with a specific code.
func RequireTxFail(t *testing.T, result TxResult, expected tx.Result) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with code %s, but transaction succeeded", expected)
	require.Equal(t, expected.String(), result.Code,
		"Expected failure code %s, got %s: %s", expected, result.Code, result.Message)
}

// RequireBalance asserts the balance owner holds of mint.
func RequireBalance(t *testing.T, env *TestEnv, owner *Account, mint solana.PublicKey, expected uint64) {
	t.Helper()
	actual := env.Balance(owner.Address, mint)
	require.Equal(t, expected, actual,
		"Account %s balance of %s mismatch: expected %d, got %d",
		owner.Name, mint, expected, actual)
}

// RequireSupply asserts the total supply of mint.
func RequireSupply(t *testing.T, env *TestEnv, mint solana.PublicKey, expected uint64) {
	t.Helper()
	actual := env.Supply(mint)
	require.Equal(t, expected, actual,
		"Mint %s supply mismatch: expected %d, got %d", mint, expected, actual)
}

// RequireUnchanged asserts that fn leaves every record of the ledger as
// it found it.
func RequireUnchanged(t *testing.T, env *TestEnv, fn func()) {
	t.Helper()
	before := env.Snapshot()
	fn()
	require.Equal(t, before, env.Snapshot(), "ledger changed")
}
