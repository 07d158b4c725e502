// Package testing provides test infrastructure for pool, bridge and asset
// transactions.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: an engine over an in-memory ledger with the fee hook registered
//   - Account: deterministic test accounts named for debugging
//   - Mint and funding helpers for native and token assets
//   - Assertions: helpers for result codes and balances
//
// # Basic Usage
//
//	func TestSwap(t *testing.T) {
//	    env := jtx.NewTestEnv(t)
//
//	    alice := jtx.NewAccount("alice")
//	    bob := jtx.NewAccount("bob")
//	    usd := env.NewMint("usd", env.Issuer(), 6)
//	    env.Fund(usd, alice, 1_000_000)
//	    env.OpenAccount(bob, usd)
//
//	    result := env.Submit(asset.NewTransfer(alice.Address, usd, bob.Address, 10))
//	    jtx.RequireTxSuccess(t, result)
//	}
//
// Subpackages (amm, bridge) add fluent builders for their transactions.
package testing
