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
	tx.Register(tx.TypeDeposit, func() tx.Transaction {
		return &Deposit{BaseTx: *tx.NewBaseTx(tx.TypeDeposit, solana.PublicKey{})}
	})
}

// Deposit adds both reserve assets to a pool and mints LP shares to the
// depositor.
type Deposit struct {
	tx.BaseTx

	Seed uint64 `json:"Seed"`

	// AmountA and AmountB are the offered amounts. Once the pool holds
	// liquidity only the pair matching the current ratio is taken.
	AmountA uint64 `json:"AmountA"`
	AmountB uint64 `json:"AmountB"`

	// MaxA and MaxB cap what a funded pool may take.
	MaxA uint64 `json:"MaxA"`
	MaxB uint64 `json:"MaxB"`
}

// NewDeposit creates a new Deposit transaction
func NewDeposit(account solana.PublicKey, seed, amountA, amountB, maxA, maxB uint64) *Deposit {
	return &Deposit{
		BaseTx:  *tx.NewBaseTx(tx.TypeDeposit, account),
		Seed:    seed,
		AmountA: amountA,
		AmountB: amountB,
		MaxA:    maxA,
		MaxB:    maxB,
	}
}

// Validate validates the Deposit transaction
func (d *Deposit) Validate() error {
	if err := d.BaseTx.Validate(); err != nil {
		return err
	}
	if d.AmountA == 0 && d.AmountB == 0 {
		return errors.New("temINVALID_AMOUNT: deposit of nothing")
	}
	return nil
}

func (d *Deposit) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	p, err := loadPool(fc.View, d.Seed)
	if err != nil {
		return nil, err
	}
	fp := tx.NewFootprint().Read(p.key)
	for _, side := range []struct {
		vault keylet.Keylet
		mint  solana.PublicKey
	}{{p.vaultA, p.cfg.MintA}, {p.vaultB, p.cfg.MintB}} {
		user := keylet.TokenAccount(fc.Account, side.mint)
		if err := vaultTransferFootprint(fc, fp, user, side.vault, side.mint, fc.Account); err != nil {
			return nil, err
		}
	}
	return fp.Write(p.lpMint, keylet.TokenAccount(fc.Account, p.lpMint.Address())), nil
}

// Apply takes the deposit. The first deposit into an empty pool sets the
// price and mints the bootstrap supply; later deposits take the binding
// pair at the current ratio and mint shares in proportion to reserve A.
func (d *Deposit) Apply(ctx *tx.ApplyContext) tx.Result {
	p, err := loadPool(ctx.View, d.Seed)
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

	var amountA, amountB, lp uint64
	if supply == 0 || reserveA == 0 || reserveB == 0 {
		amountA, amountB, lp = d.AmountA, d.AmountB, curve.BootstrapLPAmount
	} else {
		amountA, amountB, err = curve.BalancedDeposit(reserveA, reserveB, d.AmountA, d.AmountB)
		if err != nil {
			return fail(ctx, tx.Wrap(tx.TemINVALID_AMOUNT, err))
		}
		if amountA > d.MaxA || amountB > d.MaxB {
			return tx.TecSLIPPAGE_EXCEEDED
		}
		if lp, err = curve.LPForDeposit(reserveA, supply, amountA); err != nil {
			return fail(ctx, tx.Wrap(tx.TemINVALID_AMOUNT, err))
		}
	}

	user := custody.User(ctx.Account)
	if err := tl.Transfer(keylet.TokenAccount(ctx.Account, p.cfg.MintA), p.vaultA, amountA, user); err != nil {
		return fail(ctx, err)
	}
	if err := tl.Transfer(keylet.TokenAccount(ctx.Account, p.cfg.MintB), p.vaultB, amountB, user); err != nil {
		return fail(ctx, err)
	}

	userLP, err := ensureAccount(ctx.View, tl, ctx.Account, p.lpMint.Address())
	if err != nil {
		return fail(ctx, err)
	}
	auth, err := p.authority()
	if err != nil {
		return fail(ctx, tx.Wrap(tx.TecINVALID_AUTHORITY, err))
	}
	if err := tl.MintTo(p.lpMint, userLP, lp, auth); err != nil {
		return fail(ctx, err)
	}

	ctx.Logger.Debug("deposit",
		zap.Uint64("seed", d.Seed),
		zap.Uint64("amount_a", amountA),
		zap.Uint64("amount_b", amountB),
		zap.Uint64("lp", lp),
	)
	return tx.TesSUCCESS
}
