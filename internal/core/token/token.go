// Package token is the asset layer: mints, token accounts and the moves
// between them. Every balance change in the ledger goes through Ledger.
package token

import (
	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
	solana "github.com/gagliardetto/solana-go"
)

// Ledger applies asset operations to a view.
type Ledger struct {
	view  tx.LedgerView
	hooks tx.HookRegistry
}

// New returns an asset layer over view. hooks may be nil when no mint in
// view has a transfer hook.
func New(view tx.LedgerView, hooks tx.HookRegistry) *Ledger {
	if hooks == nil {
		hooks = tx.Hooks{}
	}
	return &Ledger{view: view, hooks: hooks}
}

// Mint reads a mint.
func (l *Ledger) Mint(k keylet.Keylet) (*sle.MintData, error) {
	data, err := l.view.Read(k)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, tx.Errorf(tx.TecNO_ENTRY, "mint %s not found", k.Address())
	}
	m, err := sle.ParseMint(data)
	if err != nil {
		return nil, tx.Wrap(tx.TecINVALID_TOKEN, err)
	}
	return m, nil
}

// Account reads a token account.
func (l *Ledger) Account(k keylet.Keylet) (*sle.TokenAccountData, error) {
	data, err := l.view.Read(k)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, tx.Errorf(tx.TecNO_ENTRY, "token account %s not found", k.Address())
	}
	a, err := sle.ParseTokenAccount(data)
	if err != nil {
		return nil, tx.Wrap(tx.TecINVALID_TOKEN, err)
	}
	return a, nil
}

// Balance returns the amount held by a token account.
func (l *Ledger) Balance(k keylet.Keylet) (uint64, error) {
	a, err := l.Account(k)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

// InitializeMint creates a mint with zero supply.
func (l *Ledger) InitializeMint(k keylet.Keylet, decimals uint8, authority, hookProgram *solana.PublicKey) error {
	m := &sle.MintData{Decimals: decimals}
	if authority != nil {
		m.HasMintAuthority, m.MintAuthority = true, *authority
	}
	if hookProgram != nil {
		m.HasTransferHook, m.TransferHookProgram = true, *hookProgram
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return l.view.Insert(k, data)
}

// InitializeAccount creates an empty account of mint owned by owner.
func (l *Ledger) InitializeAccount(k keylet.Keylet, mint, owner solana.PublicKey) error {
	if _, err := l.Mint(keylet.Mint(mint)); err != nil {
		return tx.Wrap(tx.TecINVALID_TOKEN, err)
	}
	a := &sle.TokenAccountData{Mint: mint, Owner: owner}
	data, err := a.Encode()
	if err != nil {
		return err
	}
	return l.view.Insert(k, data)
}

func (l *Ledger) putAccount(k keylet.Keylet, a *sle.TokenAccountData) error {
	data, err := a.Encode()
	if err != nil {
		return err
	}
	return l.view.Update(k, data)
}

func (l *Ledger) putMint(k keylet.Keylet, m *sle.MintData) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return l.view.Update(k, data)
}

// authorize checks signer may spend amount from a and consumes delegated
// allowance when it acts as the delegate.
func authorize(a *sle.TokenAccountData, amount uint64, signer custody.Signer) error {
	if signer == nil {
		return tx.Errorf(tx.TecINVALID_AUTHORITY, "no signer")
	}
	ownerErr := signer.Signs(a.Owner)
	if ownerErr == nil {
		return nil
	}
	if a.HasDelegate && signer.Signs(a.Delegate) == nil {
		if a.DelegatedAmount < amount {
			return tx.Errorf(tx.TecINSUFFICIENT_BALANCE, "delegate allowance %d below %d", a.DelegatedAmount, amount)
		}
		a.DelegatedAmount -= amount
		return nil
	}
	return tx.Wrap(tx.TecINVALID_AUTHORITY, ownerErr)
}
