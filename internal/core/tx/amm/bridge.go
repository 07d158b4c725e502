package amm

import (
	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
)

// BridgeDecimals is the precision of every bridge mint.
const BridgeDecimals = 9

// bridge is a pool's bridge config and its derived addresses.
type bridge struct {
	key   keylet.Keylet
	cfg   *sle.BridgePoolConfigData
	mint  keylet.Keylet
	vault keylet.Keylet
}

// loadBridge resolves the bridge attached to p.
func loadBridge(view tx.LedgerView, p *pool) (*bridge, error) {
	if !p.cfg.IsBridgePool {
		return nil, tx.Errorf(tx.TecNOT_BRIDGE_POOL, "pool %d has no bridge", p.cfg.Seed)
	}
	key := keylet.BridgeConfig(p.key.Key)
	if !p.cfg.HasBridgeConfig || !p.cfg.BridgeConfig.Equals(key.Address()) {
		return nil, tx.Errorf(tx.TecBRIDGE_CONFIG_NOT_SET, "pool %d bridge link unset", p.cfg.Seed)
	}
	data, err := view.Read(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, tx.Errorf(tx.TecBRIDGE_CONFIG_NOT_SET, "bridge config %s not found", key.Address())
	}
	cfg, err := sle.ParseBridgePoolConfig(data)
	if err != nil {
		return nil, tx.Wrap(tx.TefINTERNAL, err)
	}
	mint := keylet.BridgeMint(p.key.Key)
	if !cfg.BridgeMint.Equals(mint.Address()) {
		return nil, tx.Errorf(tx.TecINVALID_BRIDGE_MINT, "bridge mint %s, want %s", cfg.BridgeMint, mint.Address())
	}
	return &bridge{
		key:   key,
		cfg:   cfg,
		mint:  mint,
		vault: keylet.TokenAccount(key.Key, cfg.RestrictedMint),
	}, nil
}

// authority signs for the bridge vault and is the bridge mint authority.
func (b *bridge) authority() (*custody.Authority, error) {
	return issuer.FromBump(b.cfg.Bump, keylet.BridgeConfigSeeds(b.cfg.AMMConfig)...)
}

// bridgeFootprint declares the pool and bridge records any bridge call
// reads. It returns nil bridge when the pool has none yet; Apply rejects
// the call in that case.
func bridgeFootprint(fc *tx.FootprintContext, seed uint64) (*pool, *bridge, *tx.Footprint, error) {
	p, err := loadPool(fc.View, seed)
	if err != nil {
		return nil, nil, nil, err
	}
	fp := tx.NewFootprint().Read(p.key, keylet.BridgeConfig(p.key.Key))
	b, err := loadBridge(fc.View, p)
	if err != nil {
		if tx.ResultOf(err).IsTec() {
			return p, nil, fp, nil
		}
		return nil, nil, nil, err
	}
	return p, b, fp, nil
}
