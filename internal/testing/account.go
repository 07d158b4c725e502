package testing

import (
	"crypto/ed25519"
	"crypto/sha512"

	solana "github.com/gagliardetto/solana-go"
)

// Account represents a test account with a keypair.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	PrivateKey solana.PrivateKey
	Address    solana.PublicKey
}

// NewAccount creates a test account with an ed25519 keypair derived from
// the name. Using the same name always produces the same account.
func NewAccount(name string) *Account {
	hash := sha512.Sum512([]byte(name))
	key := solana.PrivateKey(ed25519.NewKeyFromSeed(hash[:ed25519.SeedSize]))
	return &Account{
		Name:       name,
		PrivateKey: key,
		Address:    key.PublicKey(),
	}
}

func (a *Account) String() string {
	return a.Name + "(" + a.Address.String() + ")"
}
