// Package ledger provides the committed state views transactions are
// applied to.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
)

var (
	// ErrEntryExists is returned when inserting over an existing entry
	ErrEntryExists = errors.New("ledger: entry already exists")

	// ErrEntryNotFound is returned when updating or erasing a missing entry
	ErrEntryNotFound = errors.New("ledger: entry not found")
)

// Memory is an in-memory ledger view.
type Memory struct {
	mu      sync.RWMutex
	entries map[[32]byte][]byte
}

// NewMemory returns an empty view.
func NewMemory() *Memory {
	return &Memory{entries: make(map[[32]byte][]byte)}
}

func (m *Memory) Read(k keylet.Keylet) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[k.Key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Exists(k keylet.Keylet) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[k.Key]
	return ok, nil
}

func (m *Memory) Insert(k keylet.Keylet, data []byte) error {
	return m.ApplyChanges([]tx.Change{{Action: tx.ActionInsert, Key: k.Key, Data: data}})
}

func (m *Memory) Update(k keylet.Keylet, data []byte) error {
	return m.ApplyChanges([]tx.Change{{Action: tx.ActionModify, Key: k.Key, Data: data}})
}

func (m *Memory) Erase(k keylet.Keylet) error {
	return m.ApplyChanges([]tx.Change{{Action: tx.ActionErase, Key: k.Key}})
}

// ForEach visits entries in ascending key order over a snapshot taken at
// the start of the call.
func (m *Memory) ForEach(fn func(key [32]byte, data []byte) bool) error {
	m.mu.RLock()
	keys := make([][32]byte, 0, len(m.entries))
	snapshot := make(map[[32]byte][]byte, len(m.entries))
	for k, v := range m.entries {
		keys = append(keys, k)
		snapshot[k] = v
	}
	m.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })
	for _, k := range keys {
		if !fn(k, append([]byte(nil), snapshot[k]...)) {
			return nil
		}
	}
	return nil
}

// ApplyChanges validates every change and then applies all of them, or
// none when one would fail.
func (m *Memory) ApplyChanges(changes []tx.Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range changes {
		_, exists := m.entries[c.Key]
		if err := checkChange(c, exists); err != nil {
			return err
		}
	}
	for _, c := range changes {
		if c.Action == tx.ActionErase {
			delete(m.entries, c.Key)
			continue
		}
		m.entries[c.Key] = append([]byte(nil), c.Data...)
	}
	return nil
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func checkChange(c tx.Change, exists bool) error {
	switch c.Action {
	case tx.ActionInsert:
		if exists {
			return fmt.Errorf("%w: %x", ErrEntryExists, c.Key)
		}
	case tx.ActionModify, tx.ActionErase:
		if !exists {
			return fmt.Errorf("%w: %x", ErrEntryNotFound, c.Key)
		}
	default:
		return fmt.Errorf("ledger: cannot apply %s", c.Action)
	}
	return nil
}
