// Package custody models who may move funds out of a token account.
//
// User keys sign for accounts they own. Program-owned accounts (pool
// vaults, the bridge vault, the hook delegate) are owned by a derived
// address that no private key controls; the only way to sign for one is an
// Authority built from the seeds the address was derived from. Authorities
// are issued by a Program, and each program id is claimed by exactly one
// owner.
package custody

import (
	"errors"
	"fmt"
	"sync"

	solana "github.com/gagliardetto/solana-go"
)

var (
	// ErrInvalidAuthority is returned when a derived authority does not
	// re-derive to the account owner it signs for.
	ErrInvalidAuthority = errors.New("custody: invalid authority")

	// ErrNotOwner is returned when a user key signs for an account it does not own.
	ErrNotOwner = errors.New("custody: signer does not own account")

	// ErrClaimed is returned when a program id already has an issuer.
	ErrClaimed = errors.New("custody: program already claimed")
)

var (
	claimsMu sync.Mutex
	claimed  = make(map[solana.PublicKey]bool)
)

// Program issues authorities for addresses derived under one program id.
type Program struct {
	id solana.PublicKey
}

// Claim returns the issuer for id. It succeeds once per id per process;
// the package owning the program holds the result unexported.
func Claim(id solana.PublicKey) (*Program, error) {
	claimsMu.Lock()
	defer claimsMu.Unlock()
	if claimed[id] {
		return nil, fmt.Errorf("%w: %s", ErrClaimed, id)
	}
	claimed[id] = true
	return &Program{id: id}, nil
}

// MustClaim is Claim for package initialization.
func MustClaim(id solana.PublicKey) *Program {
	p, err := Claim(id)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the program id.
func (p *Program) ID() solana.PublicKey {
	return p.id
}

// Signer proves the right to spend from accounts owned by one key.
type Signer interface {
	// Key is the address the signer acts for.
	Key() solana.PublicKey

	// Signs returns nil if the signer may act for owner.
	Signs(owner solana.PublicKey) error
}

// Authority is the signing capability of a program-derived address.
type Authority struct {
	program solana.PublicKey
	seeds   [][]byte
	bump    uint8
	address solana.PublicKey
}

// Derive finds the derived address of seeds and returns its authority.
func (p *Program) Derive(seeds ...[]byte) (*Authority, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, p.id)
	if err != nil {
		return nil, fmt.Errorf("custody: derive: %w", err)
	}
	return &Authority{program: p.id, seeds: copySeeds(seeds), bump: bump, address: addr}, nil
}

// FromBump rebuilds an authority from seeds and the bump stored at
// creation time.
func (p *Program) FromBump(bump uint8, seeds ...[]byte) (*Authority, error) {
	a := &Authority{program: p.id, seeds: copySeeds(seeds), bump: bump}
	addr, err := solana.CreateProgramAddress(a.SignerSeeds(), p.id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAuthority, err)
	}
	a.address = addr
	return a, nil
}

func copySeeds(seeds [][]byte) [][]byte {
	out := make([][]byte, len(seeds))
	for i, s := range seeds {
		out[i] = append([]byte(nil), s...)
	}
	return out
}

// Key returns the derived address.
func (a *Authority) Key() solana.PublicKey {
	return a.address
}

// Bump returns the bump seed.
func (a *Authority) Bump() uint8 {
	return a.bump
}

// SignerSeeds returns the derivation seeds followed by the bump.
func (a *Authority) SignerSeeds() [][]byte {
	out := copySeeds(a.seeds)
	return append(out, []byte{a.bump})
}

// Signs re-derives the address from the signer seeds and checks it is owner.
func (a *Authority) Signs(owner solana.PublicKey) error {
	if a == nil || len(a.seeds) == 0 {
		return ErrInvalidAuthority
	}
	addr, err := solana.CreateProgramAddress(a.SignerSeeds(), a.program)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAuthority, err)
	}
	if !addr.Equals(owner) {
		return fmt.Errorf("%w: derives %s, account owned by %s", ErrInvalidAuthority, addr, owner)
	}
	return nil
}

func (a *Authority) String() string {
	return a.address.String()
}

// User is the signature of a transaction's own signer.
type User solana.PublicKey

// Key returns the user's key.
func (u User) Key() solana.PublicKey {
	return solana.PublicKey(u)
}

// Signs returns nil if u is owner.
func (u User) Signs(owner solana.PublicKey) error {
	if solana.PublicKey(u).IsZero() || !solana.PublicKey(u).Equals(owner) {
		return ErrNotOwner
	}
	return nil
}
