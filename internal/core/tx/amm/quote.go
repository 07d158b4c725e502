package amm

import (
	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
)

// PoolState is a read-only snapshot of a pool.
type PoolState struct {
	Seed      uint64            `json:"seed"`
	Address   solana.PublicKey  `json:"address"`
	Authority *solana.PublicKey `json:"authority,omitempty"`
	MintA     solana.PublicKey  `json:"mint_a"`
	MintB     solana.PublicKey  `json:"mint_b"`
	LPMint    solana.PublicKey  `json:"lp_mint"`
	FeeBps    uint16            `json:"fee_bps"`
	Locked    bool              `json:"locked"`
	ReserveA  uint64            `json:"reserve_a"`
	ReserveB  uint64            `json:"reserve_b"`
	LPSupply  uint64            `json:"lp_supply"`

	BridgeConfig *solana.PublicKey `json:"bridge_config,omitempty"`
}

// ReadPool returns the current state of the pool with the given seed.
// Reserves of a side without a vault read as zero.
func ReadPool(view tx.LedgerView, seed uint64) (*PoolState, error) {
	p, err := loadPool(view, seed)
	if err != nil {
		return nil, err
	}
	tl := token.New(view, nil)
	s := &PoolState{
		Seed:    seed,
		Address: p.key.Address(),
		MintA:   p.cfg.MintA,
		MintB:   p.cfg.MintB,
		LPMint:  p.lpMint.Address(),
		FeeBps:  p.cfg.FeeBps,
		Locked:  p.cfg.Locked,
	}
	if p.cfg.HasAuthority {
		a := p.cfg.Authority
		s.Authority = &a
	}
	if p.cfg.HasBridgeConfig {
		b := p.cfg.BridgeConfig
		s.BridgeConfig = &b
	}
	if s.ReserveA, err = optionalBalance(tl, p, true); err != nil {
		return nil, err
	}
	if s.ReserveB, err = optionalBalance(tl, p, false); err != nil {
		return nil, err
	}
	lp, err := tl.Mint(p.lpMint)
	if err != nil {
		return nil, err
	}
	s.LPSupply = lp.Supply
	return s, nil
}

func optionalBalance(tl *token.Ledger, p *pool, sideA bool) (uint64, error) {
	k := p.vaultB
	if sideA {
		k = p.vaultA
	}
	n, err := tl.Balance(k)
	if tx.ResultOf(err) == tx.TecNO_ENTRY {
		return 0, nil
	}
	return n, err
}

// Quote previews a swap against the current reserves without changing
// the ledger.
func Quote(view tx.LedgerView, seed uint64, d curve.Direction, amountIn uint64) (curve.Quote, error) {
	p, err := loadPool(view, seed)
	if err != nil {
		return curve.Quote{}, err
	}
	reserveA, reserveB, supply, err := p.reserves(token.New(view, nil))
	if err != nil {
		return curve.Quote{}, err
	}
	c, err := curve.NewConstantProduct(reserveA, reserveB, supply, p.cfg.FeeBps, curve.DefaultPrecision)
	if err != nil {
		return curve.Quote{}, tx.Wrap(curveResult(err), err)
	}
	q, err := c.Quote(d, amountIn)
	if err != nil {
		return curve.Quote{}, tx.Wrap(tx.TecCURVE_ERROR, err)
	}
	return q, nil
}
