package amm

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
)

func init() {
	tx.Register(tx.TypePoolSetLock, func() tx.Transaction {
		return &PoolSetLock{BaseTx: *tx.NewBaseTx(tx.TypePoolSetLock, solana.PublicKey{})}
	})
}

// PoolSetLock locks or unlocks a pool. Only the pool authority may do so.
type PoolSetLock struct {
	tx.BaseTx

	Seed   uint64 `json:"Seed"`
	Locked bool   `json:"Locked"`
}

// NewPoolSetLock creates a new PoolSetLock transaction
func NewPoolSetLock(account solana.PublicKey, seed uint64, locked bool) *PoolSetLock {
	return &PoolSetLock{
		BaseTx: *tx.NewBaseTx(tx.TypePoolSetLock, account),
		Seed:   seed,
		Locked: locked,
	}
}

func (p *PoolSetLock) Footprint(*tx.FootprintContext) (*tx.Footprint, error) {
	return tx.NewFootprint().Write(keylet.Config(p.Seed)), nil
}

func (p *PoolSetLock) Apply(ctx *tx.ApplyContext) tx.Result {
	pl, err := loadPool(ctx.View, p.Seed)
	if err != nil {
		return fail(ctx, err)
	}
	if !pl.cfg.HasAuthority {
		return tx.TecNO_AUTHORITY_SET
	}
	if !pl.cfg.Authority.Equals(ctx.Account) {
		return tx.TecINVALID_AUTHORITY
	}
	if pl.cfg.Locked == p.Locked {
		return tx.TesSUCCESS
	}
	pl.cfg.Locked = p.Locked
	if err := pl.save(ctx.View); err != nil {
		return fail(ctx, err)
	}
	return tx.TesSUCCESS
}
