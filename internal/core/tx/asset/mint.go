// Package asset holds the user-facing asset transactions: creating mints
// and accounts, issuing supply, approving delegates and transferring.
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
	tx.Register(tx.TypeCreateMint, func() tx.Transaction {
		return &CreateMint{BaseTx: *tx.NewBaseTx(tx.TypeCreateMint, solana.PublicKey{})}
	})
	tx.Register(tx.TypeMintTo, func() tx.Transaction {
		return &MintTo{BaseTx: *tx.NewBaseTx(tx.TypeMintTo, solana.PublicKey{})}
	})
}

// CreateMint creates a mint at a caller-chosen address.
type CreateMint struct {
	tx.BaseTx

	Address  solana.PublicKey `json:"Address"`
	Decimals uint8            `json:"Decimals"`

	// MintAuthority may issue supply. A mint without one has fixed supply.
	MintAuthority *solana.PublicKey `json:"MintAuthority,omitempty"`

	// TransferHookProgram is run on every transfer of the mint (optional)
	TransferHookProgram *solana.PublicKey `json:"TransferHookProgram,omitempty"`
}

// NewCreateMint creates a new CreateMint transaction with account as the
// mint authority.
func NewCreateMint(account, address solana.PublicKey, decimals uint8) *CreateMint {
	auth := account
	return &CreateMint{
		BaseTx:        *tx.NewBaseTx(tx.TypeCreateMint, account),
		Address:       address,
		Decimals:      decimals,
		MintAuthority: &auth,
	}
}

// Validate validates the CreateMint transaction
func (c *CreateMint) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if c.Address.IsZero() {
		return errors.New("temMALFORMED: Address is required")
	}
	return nil
}

func (c *CreateMint) Footprint(*tx.FootprintContext) (*tx.Footprint, error) {
	return tx.NewFootprint().Write(keylet.Mint(c.Address)), nil
}

func (c *CreateMint) Apply(ctx *tx.ApplyContext) tx.Result {
	err := token.New(ctx.View, ctx.Hooks).InitializeMint(keylet.Mint(c.Address), c.Decimals, c.MintAuthority, c.TransferHookProgram)
	return tx.ResultOf(err)
}

// MintTo issues new supply into the associated account of Destination,
// opening the account if needed. The signer must be the mint authority.
type MintTo struct {
	tx.BaseTx

	Mint        solana.PublicKey `json:"Mint"`
	Destination solana.PublicKey `json:"Destination"`
	Amount      uint64           `json:"Amount"`
}

// NewMintTo creates a new MintTo transaction
func NewMintTo(account, mint, destination solana.PublicKey, amount uint64) *MintTo {
	return &MintTo{
		BaseTx:      *tx.NewBaseTx(tx.TypeMintTo, account),
		Mint:        mint,
		Destination: destination,
		Amount:      amount,
	}
}

// Validate validates the MintTo transaction
func (m *MintTo) Validate() error {
	if err := m.BaseTx.Validate(); err != nil {
		return err
	}
	if m.Mint.IsZero() || m.Destination.IsZero() {
		return errors.New("temMALFORMED: Mint and Destination are required")
	}
	if m.Amount == 0 {
		return tx.ErrInvalidAmount
	}
	return nil
}

func (m *MintTo) Footprint(*tx.FootprintContext) (*tx.Footprint, error) {
	return tx.NewFootprint().Write(keylet.Mint(m.Mint), keylet.TokenAccount(m.Destination, m.Mint)), nil
}

func (m *MintTo) Apply(ctx *tx.ApplyContext) tx.Result {
	tl := token.New(ctx.View, ctx.Hooks)
	dst, err := openAccount(ctx.View, tl, m.Destination, m.Mint)
	if err != nil {
		return tx.ResultOf(err)
	}
	return tx.ResultOf(tl.MintTo(keylet.Mint(m.Mint), dst, m.Amount, custody.User(ctx.Account)))
}
