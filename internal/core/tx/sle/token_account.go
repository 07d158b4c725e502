package sle

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
)

// TokenAccountData represents the balance an owner holds of one mint.
type TokenAccountData struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64

	// Delegate may spend up to DelegatedAmount on behalf of Owner.
	HasDelegate     bool
	Delegate        solana.PublicKey
	DelegatedAmount uint64
}

// Encode serializes the account.
func (a *TokenAccountData) Encode() ([]byte, error) {
	return encode(entry.TypeTokenAccount, a)
}

// ParseTokenAccount parses a TokenAccount ledger entry from binary data
func ParseTokenAccount(data []byte) (*TokenAccountData, error) {
	a := &TokenAccountData{}
	if err := decode(entry.TypeTokenAccount, data, a); err != nil {
		return nil, err
	}
	return a, nil
}
