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
	tx.Register(tx.TypeCreateAccount, func() tx.Transaction {
		return &CreateAccount{BaseTx: *tx.NewBaseTx(tx.TypeCreateAccount, solana.PublicKey{})}
	})
	tx.Register(tx.TypeApprove, func() tx.Transaction {
		return &Approve{BaseTx: *tx.NewBaseTx(tx.TypeApprove, solana.PublicKey{})}
	})
}

// openAccount returns the associated account of owner for mint, creating
// it when missing.
func openAccount(view tx.LedgerView, tl *token.Ledger, owner, mint solana.PublicKey) (keylet.Keylet, error) {
	k := keylet.TokenAccount(owner, mint)
	exists, err := view.Exists(k)
	if err != nil || exists {
		return k, err
	}
	return k, tl.InitializeAccount(k, mint, owner)
}

// CreateAccount opens the associated account of Owner for Mint. Owner
// defaults to the signer.
type CreateAccount struct {
	tx.BaseTx

	Owner solana.PublicKey `json:"Owner,omitempty"`
	Mint  solana.PublicKey `json:"Mint"`
}

// NewCreateAccount creates a new CreateAccount transaction
func NewCreateAccount(account, owner, mint solana.PublicKey) *CreateAccount {
	return &CreateAccount{
		BaseTx: *tx.NewBaseTx(tx.TypeCreateAccount, account),
		Owner:  owner,
		Mint:   mint,
	}
}

func (c *CreateAccount) owner() solana.PublicKey {
	if c.Owner.IsZero() {
		return c.Account
	}
	return c.Owner
}

// Validate validates the CreateAccount transaction
func (c *CreateAccount) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if c.Mint.IsZero() {
		return errors.New("temMALFORMED: Mint is required")
	}
	return nil
}

func (c *CreateAccount) Footprint(*tx.FootprintContext) (*tx.Footprint, error) {
	return tx.NewFootprint().Write(keylet.TokenAccount(c.owner(), c.Mint)).Read(keylet.Mint(c.Mint)), nil
}

func (c *CreateAccount) Apply(ctx *tx.ApplyContext) tx.Result {
	owner := c.owner()
	err := token.New(ctx.View, ctx.Hooks).InitializeAccount(keylet.TokenAccount(owner, c.Mint), c.Mint, owner)
	return tx.ResultOf(err)
}

// Approve lets Delegate spend up to Amount from the signer's account of
// Mint. A zero amount revokes spending without clearing the delegate.
type Approve struct {
	tx.BaseTx

	Mint     solana.PublicKey `json:"Mint"`
	Delegate solana.PublicKey `json:"Delegate"`
	Amount   uint64           `json:"Amount"`
}

// NewApprove creates a new Approve transaction
func NewApprove(account, mint, delegate solana.PublicKey, amount uint64) *Approve {
	return &Approve{
		BaseTx:   *tx.NewBaseTx(tx.TypeApprove, account),
		Mint:     mint,
		Delegate: delegate,
		Amount:   amount,
	}
}

// Validate validates the Approve transaction
func (a *Approve) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.Mint.IsZero() || a.Delegate.IsZero() {
		return errors.New("temMALFORMED: Mint and Delegate are required")
	}
	return nil
}

func (a *Approve) Footprint(fc *tx.FootprintContext) (*tx.Footprint, error) {
	return tx.NewFootprint().Write(keylet.TokenAccount(fc.Account, a.Mint)), nil
}

func (a *Approve) Apply(ctx *tx.ApplyContext) tx.Result {
	k := keylet.TokenAccount(ctx.Account, a.Mint)
	return tx.ResultOf(token.New(ctx.View, ctx.Hooks).Approve(k, a.Delegate, a.Amount, custody.User(ctx.Account)))
}
