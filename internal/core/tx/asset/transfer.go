package asset

import (
	"errors"

	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
)

func init() {
	tx.Register(tx.TypeTransfer, func() tx.Transaction {
		return &Transfer{BaseTx: *tx.NewBaseTx(tx.TypeTransfer, solana.PublicKey{})}
	})
}

// Transfer moves Amount of Mint from the signer's associated account to
// Destination's. The destination account must exist. A hooked mint runs
// its hook.
type Transfer struct {
	tx.BaseTx

	Mint        solana.PublicKey `json:"Mint"`
	Destination solana.PublicKey `json:"Destination"`
	Amount      uint64           `json:"Amount"`
}

// NewTransfer creates a new Transfer transaction
func NewTransfer(account, mint, destination solana.PublicKey, amount uint64) *Transfer {
	return &Transfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransfer, account),
		Mint:        mint,
		Destination: destination,
		Amount:      amount,
	}
}

// Validate validates the Transfer transaction
func (t *Transfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.Mint.IsZero() || t.Destination.IsZero() {
		return errors.New("temMALFORMED: Mint and Destination are required")
	}
	if t.Amount == 0 {
		return tx.ErrInvalidAmount
	}
	return nil
}

func (t *Transfer) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	fp := tx.NewFootprint()
	err := token.TransferFootprint(fc, fp, keylet.TokenAccount(fc.Account, t.Mint), keylet.TokenAccount(t.Destination, t.Mint), t.Mint, fc.Account)
	if err != nil {
		return nil, err
	}
	return fp, nil
}

func (t *Transfer) Apply(ctx *tx.ApplyContext) tx.Result {
	err := token.New(ctx.View, ctx.Hooks).Transfer(
		keylet.TokenAccount(ctx.Account, t.Mint),
		keylet.TokenAccount(t.Destination, t.Mint),
		t.Amount,
		custody.User(ctx.Account),
	)
	return tx.ResultOf(err)
}
