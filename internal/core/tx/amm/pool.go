// Package amm implements constant-product pools and the bridge that lets
// a transfer-restricted asset trade on them.
package amm

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// LPDecimals is the precision of every LP mint.
const LPDecimals = 6

// issuer signs for every address derived under the pool program.
var issuer = custody.MustClaim(keylet.ProgramID)

// pool is a loaded pool config together with its derived addresses.
type pool struct {
	key    keylet.Keylet
	cfg    *sle.PoolConfigData
	lpMint keylet.Keylet
	vaultA keylet.Keylet
	vaultB keylet.Keylet
}

func newPool(seed uint64, cfg *sle.PoolConfigData) *pool {
	key := keylet.Config(seed)
	return &pool{
		key:    key,
		cfg:    cfg,
		lpMint: keylet.LPMint(key.Key),
		vaultA: keylet.Vault(key.Key, cfg.MintA),
		vaultB: keylet.Vault(key.Key, cfg.MintB),
	}
}

// loadPool reads the pool config for seed.
func loadPool(view tx.LedgerView, seed uint64) (*pool, error) {
	key := keylet.Config(seed)
	data, err := view.Read(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, tx.Errorf(tx.TecNO_ENTRY, "pool %d not found", seed)
	}
	cfg, err := sle.ParsePoolConfig(data)
	if err != nil {
		return nil, tx.Wrap(tx.TefINTERNAL, err)
	}
	return newPool(seed, cfg), nil
}

func (p *pool) save(view tx.LedgerView) error {
	data, err := p.cfg.Encode()
	if err != nil {
		return err
	}
	return view.Update(p.key, data)
}

// vaults returns the input and output vaults and mints for a direction.
func (p *pool) vaults(d curve.Direction) (vaultIn, vaultOut keylet.Keylet, mintIn, mintOut solana.PublicKey) {
	if d == curve.AtoB {
		return p.vaultA, p.vaultB, p.cfg.MintA, p.cfg.MintB
	}
	return p.vaultB, p.vaultA, p.cfg.MintB, p.cfg.MintA
}

// authority is the pool's signing capability. It owns token vaults and
// is the LP mint authority.
func (p *pool) authority() (*custody.Authority, error) {
	return issuer.FromBump(p.cfg.ConfigBump, keylet.ConfigSeeds(p.cfg.Seed)...)
}

// vaultSigner returns the authority that spends from the vault holding
// mint. A native side vault owns itself; token vaults are owned by the pool.
func (p *pool) vaultSigner(mint solana.PublicKey) (*custody.Authority, error) {
	if mint != keylet.NativeMint {
		return p.authority()
	}
	bump := p.cfg.VaultABump
	if mint == p.cfg.MintB {
		bump = p.cfg.VaultBBump
	}
	return issuer.FromBump(bump, keylet.SideVaultSeeds(p.key.Key)...)
}

// vaultOwner returns the owner recorded on the vault account for mint.
func vaultOwner(config keylet.Keylet, mint solana.PublicKey) solana.PublicKey {
	if mint == keylet.NativeMint {
		return keylet.SideVault(config.Key).Address()
	}
	return config.Address()
}

// bridgeMint is the mint the pool reserves for its bridge asset.
func (p *pool) bridgeMint() solana.PublicKey {
	return keylet.BridgeMint(p.key.Key).Address()
}

// tradesBridgeMint reports whether one side of the pool is its bridge asset.
func (p *pool) tradesBridgeMint() bool {
	bm := p.bridgeMint()
	return p.cfg.MintA == bm || p.cfg.MintB == bm
}

// checkTradable rejects operations that move pool reserves.
func (p *pool) checkTradable() error {
	if p.cfg.Locked {
		return tx.Errorf(tx.TecPOOL_LOCKED, "pool %d is locked", p.cfg.Seed)
	}
	if p.tradesBridgeMint() && !p.cfg.HasBridgeConfig {
		return tx.Errorf(tx.TecBRIDGE_CONFIG_NOT_SET, "pool %d trades its bridge asset before the bridge exists", p.cfg.Seed)
	}
	return nil
}

// reserves returns the vault balances and LP supply.
func (p *pool) reserves(tl *token.Ledger) (a, b, supply uint64, err error) {
	if a, err = tl.Balance(p.vaultA); err != nil {
		return 0, 0, 0, err
	}
	if b, err = tl.Balance(p.vaultB); err != nil {
		return 0, 0, 0, err
	}
	lp, err := tl.Mint(p.lpMint)
	if err != nil {
		return 0, 0, 0, err
	}
	return a, b, lp.Supply, nil
}

// ensureAccount creates owner's associated account for mint if missing.
func ensureAccount(view tx.LedgerView, tl *token.Ledger, owner, mint solana.PublicKey) (keylet.Keylet, error) {
	k := keylet.TokenAccount(owner, mint)
	exists, err := view.Exists(k)
	if err != nil || exists {
		return k, err
	}
	return k, tl.InitializeAccount(k, mint, owner)
}

// curveResult maps a curve failure to its result code.
func curveResult(err error) tx.Result {
	switch {
	case errors.Is(err, curve.ErrInvalidFee):
		return tx.TemINVALID_FEE
	case errors.Is(err, curve.ErrInvalidPrecision):
		return tx.TemINVALID_PRECISION
	default:
		return tx.TecCURVE_ERROR
	}
}

// fail logs why a call was rejected and returns its result code.
func fail(ctx *tx.ApplyContext, err error) tx.Result {
	r := tx.ResultOf(err)
	ctx.Logger.Debug("rejected", zap.Stringer("result", r), zap.Error(err))
	return r
}

// vaultTransferFootprint declares a transfer between a user account and
// a pool vault in either direction.
func vaultTransferFootprint(fc *tx.FootprintContext, fp *tx.Footprint, from, to keylet.Keylet, mint, owner solana.PublicKey) error {
	if err := token.TransferFootprint(fc, fp, from, to, mint, owner); err != nil {
		return fmt.Errorf("transfer %s: %w", mint, err)
	}
	return nil
}
