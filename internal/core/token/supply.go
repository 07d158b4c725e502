package token

import (
	"math"

	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
)

// MintTo issues amount new units of mint into an account. signer must act
// for the mint authority.
func (l *Ledger) MintTo(mintKey, to keylet.Keylet, amount uint64, signer custody.Signer) error {
	m, err := l.Mint(mintKey)
	if err != nil {
		return err
	}
	if !m.HasMintAuthority {
		return tx.Errorf(tx.TecINVALID_AUTHORITY, "mint %s has a fixed supply", mintKey.Address())
	}
	if signer == nil {
		return tx.Errorf(tx.TecINVALID_AUTHORITY, "no signer")
	}
	if err := signer.Signs(m.MintAuthority); err != nil {
		return tx.Wrap(tx.TecINVALID_AUTHORITY, err)
	}

	a, err := l.Account(to)
	if err != nil {
		return err
	}
	if !a.Mint.Equals(mintKey.Address()) {
		return tx.Errorf(tx.TecINVALID_TOKEN, "account holds %s, not %s", a.Mint, mintKey.Address())
	}
	if m.Supply > math.MaxUint64-amount {
		return tx.Errorf(tx.TecOVERFLOW, "supply overflow")
	}

	m.Supply += amount
	a.Amount += amount
	if err := l.putMint(mintKey, m); err != nil {
		return err
	}
	return l.putAccount(to, a)
}

// Burn destroys amount units held in an account.
func (l *Ledger) Burn(from, mintKey keylet.Keylet, amount uint64, signer custody.Signer) error {
	a, err := l.Account(from)
	if err != nil {
		return err
	}
	if !a.Mint.Equals(mintKey.Address()) {
		return tx.Errorf(tx.TecINVALID_TOKEN, "account holds %s, not %s", a.Mint, mintKey.Address())
	}
	if err := authorize(a, amount, signer); err != nil {
		return err
	}
	if a.Amount < amount {
		return tx.Errorf(tx.TecINSUFFICIENT_BALANCE, "balance %d below %d", a.Amount, amount)
	}
	m, err := l.Mint(mintKey)
	if err != nil {
		return err
	}

	a.Amount -= amount
	m.Supply -= amount
	if err := l.putMint(mintKey, m); err != nil {
		return err
	}
	return l.putAccount(from, a)
}

// Approve lets delegate spend up to amount from an account, replacing any
// previous approval. Only the owner may approve.
func (l *Ledger) Approve(k keylet.Keylet, delegate solana.PublicKey, amount uint64, signer custody.Signer) error {
	a, err := l.Account(k)
	if err != nil {
		return err
	}
	if signer == nil {
		return tx.Errorf(tx.TecINVALID_AUTHORITY, "no signer")
	}
	if err := signer.Signs(a.Owner); err != nil {
		return tx.Wrap(tx.TecINVALID_AUTHORITY, err)
	}
	a.HasDelegate, a.Delegate, a.DelegatedAmount = true, delegate, amount
	return l.putAccount(k, a)
}
