package tx

import "github.com/LeJamon/goAMMd/internal/core/ledger/keylet"

// LedgerView provides read/write access to ledger state
type LedgerView interface {
	// Read reads a ledger entry. Missing entries return nil data and no error.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries
	// If fn returns false, iteration stops early
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// Change is one committed mutation.
type Change struct {
	Action Action
	Key    [32]byte
	Data   []byte
}

// BatchApplier is implemented by views that can commit a set of changes
// atomically. ApplyStateTable prefers it over individual writes.
type BatchApplier interface {
	ApplyChanges(changes []Change) error
}
