package amm

import (
	"errors"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypePoolInitialize, func() tx.Transaction {
		return &PoolInitialize{BaseTx: *tx.NewBaseTx(tx.TypePoolInitialize, solana.PublicKey{})}
	})
}

// PoolInitialize creates a pool for a pair of mints together with its LP
// mint and vaults.
type PoolInitialize struct {
	tx.BaseTx

	// Seed selects the pool address (required)
	Seed uint64 `json:"Seed"`

	// FeeBps is the swap fee in basis points, at most 10000
	FeeBps uint16 `json:"FeeBps"`

	// Authority may lock the pool and attach a bridge (optional)
	Authority *solana.PublicKey `json:"Authority,omitempty"`

	MintA solana.PublicKey `json:"MintA"`
	MintB solana.PublicKey `json:"MintB"`
}

// NewPoolInitialize creates a new PoolInitialize transaction
func NewPoolInitialize(account solana.PublicKey, seed uint64, feeBps uint16, mintA, mintB solana.PublicKey) *PoolInitialize {
	return &PoolInitialize{
		BaseTx: *tx.NewBaseTx(tx.TypePoolInitialize, account),
		Seed:   seed,
		FeeBps: feeBps,
		MintA:  mintA,
		MintB:  mintB,
	}
}

// Validate validates the PoolInitialize transaction
func (p *PoolInitialize) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.FeeBps > curve.BasisPointMax {
		return errors.New("temINVALID_FEE: FeeBps exceeds 10000")
	}
	if p.MintA.IsZero() || p.MintB.IsZero() {
		return errors.New("temMALFORMED: MintA and MintB are required")
	}
	if p.MintA.Equals(p.MintB) {
		return errors.New("temMALFORMED: MintA and MintB are the same mint")
	}
	return nil
}

// Footprint declares the pool records created and the mints checked.
func (p *PoolInitialize) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	config := keylet.Config(p.Seed)
	return tx.NewFootprint().
		Write(config, keylet.LPMint(config.Key), keylet.Vault(config.Key, p.MintA), keylet.Vault(config.Key, p.MintB)).
		Read(keylet.Mint(p.MintA), keylet.Mint(p.MintB)), nil
}

// Apply creates the pool. A side naming the pool's reserved bridge mint
// gets its vault when the bridge is initialized.
func (p *PoolInitialize) Apply(ctx *tx.ApplyContext) tx.Result {
	config := keylet.Config(p.Seed)
	bridgeMint := keylet.BridgeMint(config.Key).Address()
	tl := token.New(ctx.View, ctx.Hooks)

	for _, mint := range []solana.PublicKey{p.MintA, p.MintB} {
		if mint.Equals(bridgeMint) {
			continue
		}
		if _, err := tl.Mint(keylet.Mint(mint)); err != nil {
			return fail(ctx, tx.Wrap(tx.TecINVALID_TOKEN, err))
		}
	}

	lpMint := keylet.LPMint(config.Key)
	vaultA := keylet.Vault(config.Key, p.MintA)
	vaultB := keylet.Vault(config.Key, p.MintB)
	cfg := &sle.PoolConfigData{
		Seed:       p.Seed,
		MintA:      p.MintA,
		MintB:      p.MintB,
		FeeBps:     p.FeeBps,
		ConfigBump: config.Bump,
		LPBump:     lpMint.Bump,
		VaultABump: vaultA.Bump,
		VaultBBump: vaultB.Bump,
	}
	if p.Authority != nil {
		cfg.HasAuthority, cfg.Authority = true, *p.Authority
	}
	data, err := cfg.Encode()
	if err != nil {
		return fail(ctx, err)
	}
	if err := ctx.View.Insert(config, data); err != nil {
		return fail(ctx, err)
	}

	owner := config.Address()
	if err := tl.InitializeMint(lpMint, LPDecimals, &owner, nil); err != nil {
		return fail(ctx, err)
	}
	for _, side := range []struct {
		vault keylet.Keylet
		mint  solana.PublicKey
	}{{vaultA, p.MintA}, {vaultB, p.MintB}} {
		if side.mint.Equals(bridgeMint) {
			continue
		}
		if err := tl.InitializeAccount(side.vault, side.mint, vaultOwner(config, side.mint)); err != nil {
			return fail(ctx, err)
		}
	}

	ctx.Logger.Info("pool initialized",
		zap.Uint64("seed", p.Seed),
		zap.Stringer("config", owner),
		zap.Uint16("fee_bps", p.FeeBps),
	)
	return tx.TesSUCCESS
}
