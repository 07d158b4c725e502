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
	tx.Register(tx.TypeSwap, func() tx.Transaction {
		return &Swap{BaseTx: *tx.NewBaseTx(tx.TypeSwap, solana.PublicKey{})}
	})
}

// Swap trades one reserve asset for the other along the constant-product
// curve.
type Swap struct {
	tx.BaseTx

	Seed     uint64 `json:"Seed"`
	AmountIn uint64 `json:"AmountIn"`

	// AToB is true when the caller pays asset A and receives asset B.
	AToB bool `json:"AToB"`

	MinOut uint64 `json:"MinOut"`
}

// NewSwap creates a new Swap transaction
func NewSwap(account solana.PublicKey, seed, amountIn uint64, aToB bool, minOut uint64) *Swap {
	return &Swap{
		BaseTx:   *tx.NewBaseTx(tx.TypeSwap, account),
		Seed:     seed,
		AmountIn: amountIn,
		AToB:     aToB,
		MinOut:   minOut,
	}
}

// Validate validates the Swap transaction
func (s *Swap) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.AmountIn == 0 {
		return errors.New("temINVALID_AMOUNT: AmountIn must be positive")
	}
	return nil
}

func (s *Swap) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	p, err := loadPool(fc.View, s.Seed)
	if err != nil {
		return nil, err
	}
	vaultIn, vaultOut, mintIn, mintOut := p.vaults(curve.DirectionFromBool(s.AToB))
	fp := tx.NewFootprint().Read(p.key, p.lpMint)
	if err := vaultTransferFootprint(fc, fp, keylet.TokenAccount(fc.Account, mintIn), vaultIn, mintIn, fc.Account); err != nil {
		return nil, err
	}
	if err := vaultTransferFootprint(fc, fp, vaultOut, keylet.TokenAccount(fc.Account, mintOut), mintOut, vaultOwner(p.key, mintOut)); err != nil {
		return nil, err
	}
	return fp, nil
}

// Apply executes the swap. Every curve failure, a missed minimum output
// included, rejects the call with TecCURVE_ERROR.
func (s *Swap) Apply(ctx *tx.ApplyContext) tx.Result {
	p, err := loadPool(ctx.View, s.Seed)
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
	c, err := curve.NewConstantProduct(reserveA, reserveB, supply, p.cfg.FeeBps, curve.DefaultPrecision)
	if err != nil {
		return fail(ctx, tx.Wrap(curveResult(err), err))
	}
	dir := curve.DirectionFromBool(s.AToB)
	res, err := c.Swap(dir, s.AmountIn, s.MinOut)
	if err != nil {
		return fail(ctx, tx.Wrap(tx.TecCURVE_ERROR, err))
	}
	if res.Deposit == 0 && res.Withdraw == 0 {
		return tx.TemINVALID_AMOUNT
	}

	vaultIn, vaultOut, mintIn, mintOut := p.vaults(dir)
	if err := tl.Transfer(keylet.TokenAccount(ctx.Account, mintIn), vaultIn, res.Deposit, custody.User(ctx.Account)); err != nil {
		return fail(ctx, err)
	}
	dst, err := ensureAccount(ctx.View, tl, ctx.Account, mintOut)
	if err != nil {
		return fail(ctx, err)
	}
	signer, err := p.vaultSigner(mintOut)
	if err != nil {
		return fail(ctx, tx.Wrap(tx.TecINVALID_AUTHORITY, err))
	}
	if err := tl.Transfer(vaultOut, dst, res.Withdraw, signer); err != nil {
		return fail(ctx, err)
	}

	ctx.Logger.Debug("swap",
		zap.Uint64("seed", s.Seed),
		zap.Stringer("direction", dir),
		zap.Uint64("in", res.Deposit),
		zap.Uint64("out", res.Withdraw),
		zap.Uint64("fee", res.Fee),
	)
	return tx.TesSUCCESS
}
