package tx

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
)

// ErrUndeclaredAccess is returned when a call touches a record outside its footprint.
var ErrUndeclaredAccess = errors.New("access outside declared footprint")

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

func (a Action) String() string {
	switch a {
	case ActionCache:
		return "cache"
	case ActionInsert:
		return "insert"
	case ActionModify:
		return "modify"
	case ActionErase:
		return "erase"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state (nil for deletes after erase)
}

// ApplyStateTable wraps a LedgerView and stages every modification of one
// call. Nothing reaches the base view until Apply; dropping the table
// discards the call.
type ApplyStateTable struct {
	base      LedgerView
	items     map[[32]byte]*TrackedEntry
	footprint *Footprint
	accessed  map[[32]byte]bool // key -> written
	violation error
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base
// view. A nil footprint allows any access.
func NewApplyStateTable(base LedgerView, footprint *Footprint) *ApplyStateTable {
	return &ApplyStateTable{
		base:      base,
		items:     make(map[[32]byte]*TrackedEntry),
		footprint: footprint,
		accessed:  make(map[[32]byte]bool),
	}
}

func (t *ApplyStateTable) check(k keylet.Keylet, write bool) error {
	t.accessed[k.Key] = t.accessed[k.Key] || write
	if t.footprint == nil {
		return nil
	}
	if (write && t.footprint.CanWrite(k.Key)) || (!write && t.footprint.CanRead(k.Key)) {
		return nil
	}
	mode := "read"
	if write {
		mode = "write"
	}
	err := fmt.Errorf("%w: %s %s", ErrUndeclaredAccess, mode, k)
	if t.violation == nil {
		t.violation = err
	}
	return Wrap(TefBAD_FOOTPRINT, err)
}

// Violation returns the first undeclared access, if any. The engine fails
// the call on a violation even when the transaction swallowed the error.
func (t *ApplyStateTable) Violation() error {
	return t.violation
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if err := t.check(k, false); err != nil {
		return nil, err
	}
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if err := t.check(k, false); err != nil {
		return false, err
	}
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if err := t.check(k, true); err != nil {
		return err
	}
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action != ActionErase {
			return Errorf(TecDUPLICATE, "entry already exists: %s", k)
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return Errorf(TecDUPLICATE, "entry already exists: %s", k)
	}

	t.items[k.Key] = &TrackedEntry{
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if err := t.check(k, true); err != nil {
		return err
	}
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return Errorf(TecNO_ENTRY, "entry not found (deleted): %s", k)
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// For insert, keep it as insert with new data
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return Errorf(TecNO_ENTRY, "entry not found: %s", k)
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if err := t.check(k, true); err != nil {
		return err
	}
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return Errorf(TecNO_ENTRY, "entry already deleted: %s", k)
		}
		if entry.Action == ActionInsert {
			// Inserting then deleting = no change, remove from tracking
			delete(t.items, k.Key)
			return nil
		}
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return Errorf(TecNO_ENTRY, "entry not found: %s", k)
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// IsErased returns true if the entry at the given key has been erased.
func (t *ApplyStateTable) IsErased(k keylet.Keylet) bool {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action == ActionErase
	}
	return false
}

// ForEach iterates over the base view. Staged changes are not visible.
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	return t.base.ForEach(fn)
}

// Touched returns every key accessed through the table and whether it was
// written, including reads of missing entries.
func (t *ApplyStateTable) Touched() map[[32]byte]bool {
	out := make(map[[32]byte]bool, len(t.accessed))
	for k, w := range t.accessed {
		out[k] = w
	}
	return out
}

// Changes returns the staged mutations in key order.
func (t *ApplyStateTable) Changes() []Change {
	changes := make([]Change, 0, len(t.items))
	for key, entry := range t.items {
		switch entry.Action {
		case ActionCache:
			continue
		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
		}
		c := Change{Action: entry.Action, Key: key}
		if entry.Action != ActionErase {
			c.Data = entry.Current
		}
		changes = append(changes, c)
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].Key[:], changes[j].Key[:]) < 0
	})
	return changes
}

// Apply commits all changes to the base view and returns the metadata
// describing them.
func (t *ApplyStateTable) Apply() (*Metadata, error) {
	changes := t.Changes()

	metadata := &Metadata{
		AffectedNodes: make([]AffectedNode, 0, len(changes)),
	}
	for _, c := range changes {
		entry := t.items[c.Key]
		metadata.AffectedNodes = append(metadata.AffectedNodes, buildNode(c, entry))
	}

	if batcher, ok := t.base.(BatchApplier); ok {
		if err := batcher.ApplyChanges(changes); err != nil {
			return nil, err
		}
		return metadata, nil
	}

	for _, c := range changes {
		k := keylet.Keylet{Key: c.Key}
		var err error
		switch c.Action {
		case ActionInsert:
			err = t.base.Insert(k, c.Data)
		case ActionModify:
			err = t.base.Update(k, c.Data)
		case ActionErase:
			err = t.base.Erase(k)
		}
		if err != nil {
			return nil, err
		}
	}
	return metadata, nil
}

func buildNode(c Change, entry *TrackedEntry) AffectedNode {
	data := entry.Current
	if data == nil {
		data = entry.Original
	}
	entryType := "Unknown"
	if typ, err := sle.EntryType(data); err == nil {
		entryType = typ.String()
	}

	nodeType := "ModifiedNode"
	switch c.Action {
	case ActionInsert:
		nodeType = "CreatedNode"
	case ActionErase:
		nodeType = "DeletedNode"
	}

	return AffectedNode{
		NodeType:        nodeType,
		LedgerEntryType: entryType,
		LedgerIndex:     strings.ToUpper(hex.EncodeToString(c.Key[:])),
	}
}
