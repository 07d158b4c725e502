// Package history keeps a queryable record of every call the engine
// applied, committed or rejected. It backs onto sqlite by default and
// postgres for shared deployments.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/LeJamon/goAMMd/internal/core/tx"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrUnknownDriver = errors.New("history: unknown driver")
	ErrClosed        = errors.New("history: store is closed")
)

// Config selects the backing database.
type Config struct {
	Driver string
	DSN    string
}

// Validate checks the driver and DSN.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	if c.DSN == "" {
		return errors.New("history: dsn is required")
	}
	return nil
}

// Entry is one recorded call.
type Entry struct {
	ID       int64           `json:"id"`
	Type     string          `json:"type"`
	Account  string          `json:"account"`
	Result   string          `json:"result"`
	Code     int             `json:"code"`
	Time     time.Time       `json:"time"`
	Tx       json.RawMessage `json:"tx"`
	Metadata *tx.Metadata    `json:"metadata,omitempty"`
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Account string
	Type    string
	// Failed selects only calls that did not commit.
	Failed bool
	Limit  int
}

// Store writes and queries call history. It implements tx.Journal.
type Store struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
}

var _ tx.Journal = (*Store)(nil)

// Open connects to the database and creates the schema if needed.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite allows one writer, and every connection to :memory: is a
		// separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping %s: %w", cfg.Driver, err)
	}

	s := &Store{db: db, driver: cfg.Driver, logger: logger}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("history store opened", zap.String("driver", cfg.Driver))
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if s.driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("history: init schema: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders for drivers that number them.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Record stores one applied call.
func (s *Store) Record(ctx context.Context, e tx.JournalEntry) error {
	if s.db == nil {
		return ErrClosed
	}
	raw, err := json.Marshal(e.Tx)
	if err != nil {
		return fmt.Errorf("history: encode %s: %w", e.Type, err)
	}
	var meta []byte
	if e.Metadata != nil {
		if meta, err = encodeMetadata(e.Metadata); err != nil {
			return err
		}
	}

	_, err = s.db.ExecContext(ctx, s.rebind(insertCall),
		e.Type.String(), e.Account.String(), e.Result.String(), int(e.Result), e.Time.UnixNano(), string(raw), meta)
	if err != nil {
		return fmt.Errorf("history: insert %s: %w", e.Type, err)
	}
	return nil
}

// List returns recorded calls, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var (
		where []string
		args  []any
	)
	if f.Account != "" {
		where = append(where, "account = ?")
		args = append(args, f.Account)
	}
	if f.Type != "" {
		where = append(where, "tx_type = ?")
		args = append(args, f.Type)
	}
	if f.Failed {
		where = append(where, "code <> 0")
	}
	query := selectCalls
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e      Entry
			nanos  int64
			txJSON string
			meta   []byte
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.Account, &e.Result, &e.Code, &nanos, &txJSON, &meta); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.Time = time.Unix(0, nanos).UTC()
		e.Tx = json.RawMessage(txJSON)
		if len(meta) > 0 {
			if e.Metadata, err = decodeMetadata(meta); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded calls.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM calls").Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
