package amm

import (
	"errors"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeWithdraw, func() tx.Transaction {
		return &Withdraw{BaseTx: *tx.NewBaseTx(tx.TypeWithdraw, solana.PublicKey{})}
	})
}

// Withdraw burns LP shares for a proportional part of both reserves.
type Withdraw struct {
	tx.BaseTx

	Seed     uint64 `json:"Seed"`
	LPAmount uint64 `json:"LPAmount"`
	MinA     uint64 `json:"MinA"`
	MinB     uint64 `json:"MinB"`
}

// NewWithdraw creates a new Withdraw transaction
func NewWithdraw(account solana.PublicKey, seed, lpAmount, minA, minB uint64) *Withdraw {
	return &Withdraw{
		BaseTx:   *tx.NewBaseTx(tx.TypeWithdraw, account),
		Seed:     seed,
		LPAmount: lpAmount,
		MinA:     minA,
		MinB:     minB,
	}
}

// Validate validates the Withdraw transaction
func (w *Withdraw) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.LPAmount == 0 {
		return errors.New("temINVALID_AMOUNT: LPAmount must be positive")
	}
	return nil
}

func (w *Withdraw) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	p, err := loadPool(fc.View, w.Seed)
	if err != nil {
		return nil, err
	}
	fp := tx.NewFootprint().Read(p.key)
	if err := vaultTransferFootprint(fc, fp, p.vaultA, keylet.TokenAccount(fc.Account, p.cfg.MintA), p.cfg.MintA, vaultOwner(p.key, p.cfg.MintA)); err != nil {
		return nil, err
	}
	if err := vaultTransferFootprint(fc, fp, p.vaultB, keylet.TokenAccount(fc.Account, p.cfg.MintB), p.cfg.MintB, vaultOwner(p.key, p.cfg.MintB)); err != nil {
		return nil, err
	}
	return fp.Write(p.lpMint, keylet.TokenAccount(fc.Account, p.lpMint.Address())), nil
}

func (w *Withdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	p, err := loadPool(ctx.View, w.Seed)
	if err != nil {
		return fail(ctx, err)
	}
	if err := p.checkTradable(); err != nil {
		return fail(ctx, err)
	}

	tl := token.New(ctx.View, ctx.Hooks)
	reserveA, reserveB, supply, err := p.reserves(tl)
	if err != nil {
		return fail(ctx, err)
	}
	amountA, amountB, err := curve.WithdrawAmounts(reserveA, reserveB, supply, w.LPAmount)
	if err != nil {
		return fail(ctx, tx.Wrap(curveResult(err), err))
	}
	if amountA < w.MinA || amountB < w.MinB {
		return tx.TecSLIPPAGE_EXCEEDED
	}

	for _, side := range []struct {
		vault  keylet.Keylet
		mint   solana.PublicKey
		amount uint64
	}{{p.vaultA, p.cfg.MintA, amountA}, {p.vaultB, p.cfg.MintB, amountB}} {
		if side.amount == 0 {
			continue
		}
		signer, err := p.vaultSigner(side.mint)
		if err != nil {
			return fail(ctx, tx.Wrap(tx.TecINVALID_AUTHORITY, err))
		}
		dst, err := ensureAccount(ctx.View, tl, ctx.Account, side.mint)
		if err != nil {
			return fail(ctx, err)
		}
		if err := tl.Transfer(side.vault, dst, side.amount, signer); err != nil {
			return fail(ctx, err)
		}
	}

	userLP := keylet.TokenAccount(ctx.Account, p.lpMint.Address())
	if err := tl.Burn(userLP, p.lpMint, w.LPAmount, custody.User(ctx.Account)); err != nil {
		return fail(ctx, err)
	}

	ctx.Logger.Debug("withdraw",
		zap.Uint64("seed", w.Seed),
		zap.Uint64("lp", w.LPAmount),
		zap.Uint64("amount_a", amountA),
		zap.Uint64("amount_b", amountB),
	)
	return tx.TesSUCCESS
}
