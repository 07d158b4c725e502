package tx

import (
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	solana "github.com/gagliardetto/solana-go"
)

// HookExecution describes one transfer of a hooked mint.
type HookExecution struct {
	Source      solana.PublicKey // source token account
	Mint        solana.PublicKey
	Destination solana.PublicKey // destination token account
	Owner       solana.PublicKey // owner of the source account
	Amount      uint64
}

//go:generate mockgen -destination=txmock/hook.go -package=txmock github.com/LeJamon/goAMMd/internal/core/tx Hook

// Hook is a transfer validator invoked by the asset layer after the amount
// of a hooked mint has moved. Returning an error rejects the transfer.
type Hook interface {
	// Accounts returns the records Execute will touch for exec.
	Accounts(view LedgerView, exec HookExecution) (reads, writes []keylet.Keylet, err error)

	// Execute validates the transfer and applies its side effects.
	Execute(view LedgerView, exec HookExecution) error
}

// HookRegistry resolves the hook a mint names by program id.
type HookRegistry interface {
	Hook(program solana.PublicKey) (Hook, bool)
}

// Hooks is a HookRegistry backed by a map.
type Hooks map[solana.PublicKey]Hook

// Hook returns the hook registered for program.
func (h Hooks) Hook(program solana.PublicKey) (Hook, bool) {
	hook, ok := h[program]
	return hook, ok
}
