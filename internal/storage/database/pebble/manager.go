package pebble

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/LeJamon/goAMMd/internal/storage/database"
	"github.com/cockroachdb/pebble"
)

// StateDB is the database holding committed ledger entries.
const StateDB = "state"

// Manager owns the pebble databases kept under one data directory, one
// subdirectory per name. Handles returned by OpenDB do not own the
// database: closing a handle detaches it, closing the manager closes the
// database.
type Manager struct {
	mu     sync.Mutex
	dir    string
	dbs    map[string]*pebble.DB
	closed bool
}

func NewManager(dir string) *Manager {
	return &Manager{
		dir: dir,
		dbs: make(map[string]*pebble.DB),
	}
}

func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}

// OpenDB returns a handle on the database called name, opening it on first use.
func (m *Manager) OpenDB(name string) (*DB, error) {
	if !validName(name) {
		return nil, fmt.Errorf("invalid database name %q", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, database.ErrDBClosed
	}
	if db, ok := m.dbs[name]; ok {
		return NewDB(db), nil
	}

	path := filepath.Join(m.dir, name)
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble %s at %s: %w", name, path, err)
	}
	m.dbs[name] = db
	return NewDB(db), nil
}

// Names returns the open databases in order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.dbs))
	for name := range m.dbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CloseDB closes one database. Handles on it must not be used afterwards.
func (m *Manager) CloseDB(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, ok := m.dbs[name]
	if !ok {
		return fmt.Errorf("database %s is not open", name)
	}
	delete(m.dbs, name)
	return db.Close()
}

// Close closes every open database. Later OpenDB calls fail with
// database.ErrDBClosed.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	var errs []error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(m.dbs, name)
	}
	return errors.Join(errs...)
}
