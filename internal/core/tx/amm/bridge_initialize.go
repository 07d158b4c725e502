package amm

import (
	"errors"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeBridgeInitialize, func() tx.Transaction {
		return &BridgeInitialize{BaseTx: *tx.NewBaseTx(tx.TypeBridgeInitialize, solana.PublicKey{})}
	})
}

// BridgeInitialize attaches a bridge to a pool. The bridge holds a
// restricted asset in custody and issues the pool's bridge mint against it
// one to one.
type BridgeInitialize struct {
	tx.BaseTx

	Seed           uint64           `json:"Seed"`
	RestrictedMint solana.PublicKey `json:"RestrictedMint"`
}

// NewBridgeInitialize creates a new BridgeInitialize transaction
func NewBridgeInitialize(account solana.PublicKey, seed uint64, restrictedMint solana.PublicKey) *BridgeInitialize {
	return &BridgeInitialize{
		BaseTx:         *tx.NewBaseTx(tx.TypeBridgeInitialize, account),
		Seed:           seed,
		RestrictedMint: restrictedMint,
	}
}

// Validate validates the BridgeInitialize transaction
func (b *BridgeInitialize) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.RestrictedMint.IsZero() {
		return errors.New("temMALFORMED: RestrictedMint is required")
	}
	return nil
}

func (b *BridgeInitialize) Footprint(*tx.FootprintContext) (*tx.Footprint, error) {
	config := keylet.Config(b.Seed)
	bc := keylet.BridgeConfig(config.Key)
	bm := keylet.BridgeMint(config.Key)
	return tx.NewFootprint().
		Write(config, bc, bm, keylet.TokenAccount(bc.Key, b.RestrictedMint), keylet.Vault(config.Key, bm.Key)).
		Read(keylet.Mint(b.RestrictedMint)), nil
}

func (b *BridgeInitialize) Apply(ctx *tx.ApplyContext) tx.Result {
	p, err := loadPool(ctx.View, b.Seed)
	if err != nil {
		return fail(ctx, err)
	}
	if !p.cfg.HasAuthority || !p.cfg.Authority.Equals(ctx.Account) {
		return tx.TecUNAUTHORIZED
	}
	if p.cfg.IsBridgePool {
		return tx.TecALREADY_BRIDGE_POOL
	}
	if !p.tradesBridgeMint() {
		return fail(ctx, tx.Errorf(tx.TecINVALID_TOKEN, "pool %d does not trade its bridge mint", b.Seed))
	}

	tl := token.New(ctx.View, ctx.Hooks)
	if _, err := tl.Mint(keylet.Mint(b.RestrictedMint)); err != nil {
		return fail(ctx, tx.Wrap(tx.TecINVALID_TOKEN, err))
	}

	bc := keylet.BridgeConfig(p.key.Key)
	bm := keylet.BridgeMint(p.key.Key)
	vault := keylet.TokenAccount(bc.Key, b.RestrictedMint)
	bcAddr := bc.Address()

	if err := tl.InitializeMint(bm, BridgeDecimals, &bcAddr, nil); err != nil {
		return fail(ctx, err)
	}
	if err := tl.InitializeAccount(vault, b.RestrictedMint, bcAddr); err != nil {
		return fail(ctx, err)
	}
	if err := tl.InitializeAccount(keylet.Vault(p.key.Key, bm.Key), bm.Address(), vaultOwner(p.key, bm.Address())); err != nil {
		return fail(ctx, err)
	}

	data, err := (&sle.BridgePoolConfigData{
		AMMConfig:      p.key.Address(),
		RestrictedMint: b.RestrictedMint,
		BridgeMint:     bm.Address(),
		TokenVault:     vault.Address(),
		Bump:           bc.Bump,
	}).Encode()
	if err != nil {
		return fail(ctx, err)
	}
	if err := ctx.View.Insert(bc, data); err != nil {
		return fail(ctx, err)
	}

	p.cfg.IsBridgePool = true
	p.cfg.HasBridgeConfig, p.cfg.BridgeConfig = true, bcAddr
	if err := p.save(ctx.View); err != nil {
		return fail(ctx, err)
	}

	ctx.Logger.Info("bridge initialized",
		zap.Uint64("seed", b.Seed),
		zap.Stringer("restricted_mint", b.RestrictedMint),
		zap.Stringer("bridge_mint", bm.Address()),
	)
	return tx.TesSUCCESS
}
