package tx

import (
	"bytes"
	"sort"
	"sync"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	solana "github.com/gagliardetto/solana-go"
)

// Footprint is the set of records a transaction declares before it runs.
// Writes imply reads.
type Footprint struct {
	Reads  []keylet.Keylet
	Writes []keylet.Keylet
}

// NewFootprint returns an empty footprint.
func NewFootprint() *Footprint {
	return &Footprint{}
}

// Read declares read access to ks.
func (f *Footprint) Read(ks ...keylet.Keylet) *Footprint {
	f.Reads = append(f.Reads, ks...)
	return f
}

// Write declares write access to ks.
func (f *Footprint) Write(ks ...keylet.Keylet) *Footprint {
	f.Writes = append(f.Writes, ks...)
	return f
}

// Merge adds every key declared by other.
func (f *Footprint) Merge(other *Footprint) *Footprint {
	if other != nil {
		f.Reads = append(f.Reads, other.Reads...)
		f.Writes = append(f.Writes, other.Writes...)
	}
	return f
}

// CanRead reports whether key was declared for reading or writing.
func (f *Footprint) CanRead(key [32]byte) bool {
	return contains(f.Reads, key) || contains(f.Writes, key)
}

// CanWrite reports whether key was declared for writing.
func (f *Footprint) CanWrite(key [32]byte) bool {
	return contains(f.Writes, key)
}

func contains(ks []keylet.Keylet, key [32]byte) bool {
	for _, k := range ks {
		if k.Key == key {
			return true
		}
	}
	return false
}

// FootprintContext is what a transaction may consult to compute its
// footprint. View must only be used for records that never change after
// creation (pool identity, bridge links, hook metadata).
type FootprintContext struct {
	View    LedgerView
	Hooks   HookRegistry
	Account solana.PublicKey
}

// lockRequest is one key to lock and its mode.
type lockRequest struct {
	key   [32]byte
	write bool
}

// lockTable hands out one RWMutex per record key.
type lockTable struct {
	mu    sync.Mutex
	locks map[[32]byte]*sync.RWMutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[[32]byte]*sync.RWMutex)}
}

func (lt *lockTable) get(key [32]byte) *sync.RWMutex {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	l, ok := lt.locks[key]
	if !ok {
		l = &sync.RWMutex{}
		lt.locks[key] = l
	}
	return l
}

// plan returns the distinct keys of f in ascending order, each with the
// strongest mode requested.
func plan(f *Footprint) []lockRequest {
	modes := make(map[[32]byte]bool, len(f.Reads)+len(f.Writes))
	for _, k := range f.Reads {
		if _, ok := modes[k.Key]; !ok {
			modes[k.Key] = false
		}
	}
	for _, k := range f.Writes {
		modes[k.Key] = true
	}
	reqs := make([]lockRequest, 0, len(modes))
	for key, write := range modes {
		reqs = append(reqs, lockRequest{key: key, write: write})
	}
	sort.Slice(reqs, func(i, j int) bool {
		return bytes.Compare(reqs[i].key[:], reqs[j].key[:]) < 0
	})
	return reqs
}

// acquire locks every record in f in ascending key order, so two calls
// can never wait on each other in a cycle. The returned func releases them.
func (lt *lockTable) acquire(f *Footprint) func() {
	reqs := plan(f)
	held := make([]func(), 0, len(reqs))
	for _, r := range reqs {
		l := lt.get(r.key)
		if r.write {
			l.Lock()
			held = append(held, l.Unlock)
		} else {
			l.RLock()
			held = append(held, l.RUnlock)
		}
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}
}
