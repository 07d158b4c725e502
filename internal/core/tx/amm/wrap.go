package amm

import (
	"errors"

	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeWrap, func() tx.Transaction {
		return &Wrap{BaseTx: *tx.NewBaseTx(tx.TypeWrap, solana.PublicKey{})}
	})
	tx.Register(tx.TypeUnwrap, func() tx.Transaction {
		return &Unwrap{BaseTx: *tx.NewBaseTx(tx.TypeUnwrap, solana.PublicKey{})}
	})
}

// Wrap moves restricted tokens into the bridge vault and mints the same
// amount of bridge tokens to the caller.
type Wrap struct {
	tx.BaseTx

	Seed   uint64 `json:"Seed"`
	Amount uint64 `json:"Amount"`
}

// NewWrap creates a new Wrap transaction
func NewWrap(account solana.PublicKey, seed, amount uint64) *Wrap {
	return &Wrap{
		BaseTx: *tx.NewBaseTx(tx.TypeWrap, account),
		Seed:   seed,
		Amount: amount,
	}
}

// Validate validates the Wrap transaction
func (w *Wrap) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.Amount == 0 {
		return errors.New("temINVALID_AMOUNT: Amount must be positive")
	}
	return nil
}

func (w *Wrap) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	_, b, fp, err := bridgeFootprint(fc, w.Seed)
	if err != nil || b == nil {
		return fp, err
	}
	restricted := b.cfg.RestrictedMint
	if err := token.TransferFootprint(fc, fp, keylet.TokenAccount(fc.Account, restricted), b.vault, restricted, fc.Account); err != nil {
		return nil, err
	}
	return fp.Write(b.mint, keylet.TokenAccount(fc.Account, b.mint.Key)), nil
}

func (w *Wrap) Apply(ctx *tx.ApplyContext) tx.Result {
	p, err := loadPool(ctx.View, w.Seed)
	if err != nil {
		return fail(ctx, err)
	}
	b, err := loadBridge(ctx.View, p)
	if err != nil {
		return fail(ctx, err)
	}

	tl := token.New(ctx.View, ctx.Hooks)
	src := keylet.TokenAccount(ctx.Account, b.cfg.RestrictedMint)
	if err := tl.Transfer(src, b.vault, w.Amount, custody.User(ctx.Account)); err != nil {
		return fail(ctx, err)
	}

	dst, err := ensureAccount(ctx.View, tl, ctx.Account, b.mint.Address())
	if err != nil {
		return fail(ctx, err)
	}
	auth, err := b.authority()
	if err != nil {
		return fail(ctx, tx.Wrap(tx.TecINVALID_AUTHORITY, err))
	}
	if err := tl.MintTo(b.mint, dst, w.Amount, auth); err != nil {
		return fail(ctx, err)
	}

	ctx.Logger.Debug("wrap", zap.Uint64("seed", w.Seed), zap.Uint64("amount", w.Amount))
	return tx.TesSUCCESS
}

// Unwrap burns bridge tokens and releases the same amount of the
// restricted asset from the bridge vault.
type Unwrap struct {
	tx.BaseTx

	Seed   uint64 `json:"Seed"`
	Amount uint64 `json:"Amount"`
}

// NewUnwrap creates a new Unwrap transaction
func NewUnwrap(account solana.PublicKey, seed, amount uint64) *Unwrap {
	return &Unwrap{
		BaseTx: *tx.NewBaseTx(tx.TypeUnwrap, account),
		Seed:   seed,
		Amount: amount,
	}
}

// Validate validates the Unwrap transaction
func (u *Unwrap) Validate() error {
	if err := u.BaseTx.Validate(); err != nil {
		return err
	}
	if u.Amount == 0 {
		return errors.New("temINVALID_AMOUNT: Amount must be positive")
	}
	return nil
}

func (u *Unwrap) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	_, b, fp, err := bridgeFootprint(fc, u.Seed)
	if err != nil || b == nil {
		return fp, err
	}
	restricted := b.cfg.RestrictedMint
	fp.Write(b.mint, keylet.TokenAccount(fc.Account, b.mint.Key))
	if err := token.TransferFootprint(fc, fp, b.vault, keylet.TokenAccount(fc.Account, restricted), restricted, b.key.Address()); err != nil {
		return nil, err
	}
	return fp, nil
}

// Apply burns first and then releases. A failed release, the restricted
// mint's transfer hook included, rejects the call with
// TecHOOK_VALIDATION_FAILED and the burn is discarded with it.
func (u *Unwrap) Apply(ctx *tx.ApplyContext) tx.Result {
	p, err := loadPool(ctx.View, u.Seed)
	if err != nil {
		return fail(ctx, err)
	}
	b, err := loadBridge(ctx.View, p)
	if err != nil {
		return fail(ctx, err)
	}

	tl := token.New(ctx.View, ctx.Hooks)
	userBridge := keylet.TokenAccount(ctx.Account, b.mint.Key)
	held, err := tl.Balance(userBridge)
	if err != nil && tx.ResultOf(err) != tx.TecNO_ENTRY {
		return fail(ctx, err)
	}
	if held < u.Amount {
		return tx.TecINSUFFICIENT_BRIDGE_TOKENS
	}
	if err := tl.Burn(userBridge, b.mint, u.Amount, custody.User(ctx.Account)); err != nil {
		return fail(ctx, err)
	}

	dst, err := ensureAccount(ctx.View, tl, ctx.Account, b.cfg.RestrictedMint)
	if err != nil {
		return fail(ctx, err)
	}
	auth, err := b.authority()
	if err != nil {
		return fail(ctx, tx.Wrap(tx.TecINVALID_AUTHORITY, err))
	}
	if err := tl.Transfer(b.vault, dst, u.Amount, auth); err != nil {
		return fail(ctx, tx.Wrap(tx.TecHOOK_VALIDATION_FAILED, err))
	}

	ctx.Logger.Debug("unwrap", zap.Uint64("seed", u.Seed), zap.Uint64("amount", u.Amount))
	return tx.TesSUCCESS
}
