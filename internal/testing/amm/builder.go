// Package amm provides test builders for pool transactions.
package amm

import (
	solana "github.com/gagliardetto/solana-go"

	"github.com/LeJamon/goAMMd/internal/core/tx/amm"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
)

// PoolInitializeBuilder provides a fluent interface for building PoolInitialize transactions.
type PoolInitializeBuilder struct {
	account   *jtx.Account
	seed      uint64
	feeBps    uint16
	authority *jtx.Account
	mintA     solana.PublicKey
	mintB     solana.PublicKey
}

// PoolInit creates a new PoolInitializeBuilder with the default fee.
func PoolInit(account *jtx.Account, seed uint64, mintA, mintB solana.PublicKey) *PoolInitializeBuilder {
	return &PoolInitializeBuilder{
		account: account,
		seed:    seed,
		feeBps:  DefaultFeeBps,
		mintA:   mintA,
		mintB:   mintB,
	}
}

// Fee sets the swap fee in basis points.
func (b *PoolInitializeBuilder) Fee(bps uint16) *PoolInitializeBuilder {
	b.feeBps = bps
	return b
}

// Authority sets the pool authority.
func (b *PoolInitializeBuilder) Authority(acc *jtx.Account) *PoolInitializeBuilder {
	b.authority = acc
	return b
}

// Build creates the PoolInitialize transaction.
func (b *PoolInitializeBuilder) Build() *amm.PoolInitialize {
	p := amm.NewPoolInitialize(b.account.Address, b.seed, b.feeBps, b.mintA, b.mintB)
	if b.authority != nil {
		auth := b.authority.Address
		p.Authority = &auth
	}
	return p
}

// Lock builds a PoolSetLock that locks the pool.
func Lock(account *jtx.Account, seed uint64) *amm.PoolSetLock {
	return amm.NewPoolSetLock(account.Address, seed, true)
}

// Unlock builds a PoolSetLock that unlocks the pool.
func Unlock(account *jtx.Account, seed uint64) *amm.PoolSetLock {
	return amm.NewPoolSetLock(account.Address, seed, false)
}

// DepositBuilder provides a fluent interface for building Deposit transactions.
type DepositBuilder struct {
	account          *jtx.Account
	seed             uint64
	amountA, amountB uint64
	maxA, maxB       *uint64
}

// Deposit creates a new DepositBuilder. Maximums default to the offered amounts.
func Deposit(account *jtx.Account, seed uint64, amountA, amountB uint64) *DepositBuilder {
	return &DepositBuilder{
		account: account,
		seed:    seed,
		amountA: amountA,
		amountB: amountB,
	}
}

// Max sets the deposit ceilings.
func (b *DepositBuilder) Max(maxA, maxB uint64) *DepositBuilder {
	b.maxA, b.maxB = &maxA, &maxB
	return b
}

// Build creates the Deposit transaction.
func (b *DepositBuilder) Build() *amm.Deposit {
	maxA, maxB := b.amountA, b.amountB
	if b.maxA != nil {
		maxA, maxB = *b.maxA, *b.maxB
	}
	return amm.NewDeposit(b.account.Address, b.seed, b.amountA, b.amountB, maxA, maxB)
}

// WithdrawBuilder provides a fluent interface for building Withdraw transactions.
type WithdrawBuilder struct {
	account    *jtx.Account
	seed       uint64
	lp         uint64
	minA, minB uint64
}

// Withdraw creates a new WithdrawBuilder with no minimums.
func Withdraw(account *jtx.Account, seed, lp uint64) *WithdrawBuilder {
	return &WithdrawBuilder{account: account, seed: seed, lp: lp}
}

// Min sets the minimum amounts received.
func (b *WithdrawBuilder) Min(minA, minB uint64) *WithdrawBuilder {
	b.minA, b.minB = minA, minB
	return b
}

// Build creates the Withdraw transaction.
func (b *WithdrawBuilder) Build() *amm.Withdraw {
	return amm.NewWithdraw(b.account.Address, b.seed, b.lp, b.minA, b.minB)
}

// SwapBuilder provides a fluent interface for building Swap transactions.
type SwapBuilder struct {
	account  *jtx.Account
	seed     uint64
	amountIn uint64
	aToB     bool
	minOut   uint64
}

// SwapAToB creates a SwapBuilder paying asset A.
func SwapAToB(account *jtx.Account, seed, amountIn uint64) *SwapBuilder {
	return &SwapBuilder{account: account, seed: seed, amountIn: amountIn, aToB: true}
}

// SwapBToA creates a SwapBuilder paying asset B.
func SwapBToA(account *jtx.Account, seed, amountIn uint64) *SwapBuilder {
	return &SwapBuilder{account: account, seed: seed, amountIn: amountIn}
}

// MinOut sets the minimum output.
func (b *SwapBuilder) MinOut(n uint64) *SwapBuilder {
	b.minOut = n
	return b
}

// Build creates the Swap transaction.
func (b *SwapBuilder) Build() *amm.Swap {
	return amm.NewSwap(b.account.Address, b.seed, b.amountIn, b.aToB, b.minOut)
}
