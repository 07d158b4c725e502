package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LeJamon/goAMMd/internal/config"
	"github.com/LeJamon/goAMMd/internal/core/ledger"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/hook"
	"github.com/LeJamon/goAMMd/internal/metrics"
	"github.com/LeJamon/goAMMd/internal/storage/database"
	"github.com/LeJamon/goAMMd/internal/storage/database/leveldb"
	"github.com/LeJamon/goAMMd/internal/storage/database/pebble"
	"github.com/LeJamon/goAMMd/internal/storage/history"

	// Register transaction types.
	_ "github.com/LeJamon/goAMMd/internal/core/tx/amm"
	_ "github.com/LeJamon/goAMMd/internal/core/tx/asset"
)

// node is the ledger host one command runs against.
type node struct {
	cfg      *config.Config
	logger   *zap.Logger
	view     tx.LedgerView
	engine   *tx.Engine
	history  *history.Store
	registry *prometheus.Registry

	metricsFile string
	closers     []func() error
}

// openNode loads the configuration and opens the ledger and history.
func openNode(cmd *cobra.Command) (*node, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}
	confPath, _ := cmd.Flags().GetString("conf")
	cfg, err := config.Load(v, confPath)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	n := &node{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	n.metricsFile, _ = cmd.Flags().GetString("metrics-file")
	n.closers = append(n.closers, func() error {
		// Sync fails on stderr/stdout terminals.
		_ = logger.Sync()
		return nil
	})

	if err := n.openLedger(); err != nil {
		n.Close()
		return nil, err
	}
	if err := n.openHistory(cmd.Context()); err != nil {
		n.Close()
		return nil, err
	}

	opts := []tx.Option{
		tx.WithLogger(logger),
		tx.WithMetrics(metrics.New(n.registry)),
	}
	if n.history != nil {
		opts = append(opts, tx.WithJournal(n.history))
	}
	n.engine = tx.NewEngine(n.view, tx.EngineConfig{
		Workers: cfg.Engine.Workers,
		Hooks:   hook.Registry(),
	}, opts...)
	return n, nil
}

func (n *node) openLedger() error {
	lc := n.cfg.Ledger
	var (
		db  database.DB
		err error
	)
	switch lc.Backend {
	case config.BackendMemory:
		n.view = ledger.NewMemory()
		return nil
	case config.BackendPebble:
		mgr := pebble.NewManager(lc.Path)
		n.closers = append(n.closers, mgr.Close)
		db, err = mgr.OpenDB(pebble.StateDB)
	case config.BackendLevelDB:
		db, err = leveldb.Open(lc.Path)
	default:
		return fmt.Errorf("unknown ledger backend %q", lc.Backend)
	}
	if err != nil {
		return err
	}

	store, err := ledger.NewStore(db, ledger.StoreConfig{
		CacheSize:   lc.CacheSize,
		Compression: lc.Compression,
		Logger:      n.logger.Named("ledger"),
	})
	if err != nil {
		db.Close()
		return err
	}
	n.view = store
	n.closers = append(n.closers, store.Close)
	n.logger.Debug("ledger opened", zap.String("backend", lc.Backend), zap.String("path", lc.Path))
	return nil
}

func (n *node) openHistory(ctx context.Context) error {
	hc := n.cfg.History
	if !hc.Enabled {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if hc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.Timeout)
		defer cancel()
	}
	store, err := history.Open(ctx, history.Config{Driver: hc.Driver, DSN: hc.DSN}, n.logger.Named("history"))
	if err != nil {
		return err
	}
	n.history = store
	n.closers = append(n.closers, store.Close)
	return nil
}

// Close writes the metrics file, if any, and releases every resource in
// reverse order of opening.
func (n *node) Close() error {
	var errs []error
	if n.metricsFile != "" {
		if err := prometheus.WriteToTextfile(n.metricsFile, n.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	for i := len(n.closers) - 1; i >= 0; i-- {
		if err := n.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	n.closers = nil
	return errors.Join(errs...)
}

func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, err
	}
	cfg.Encoding = lc.Format

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// withNode opens a node for the duration of fn.
func withNode(cmd *cobra.Command, fn func(n *node) error) (err error) {
	n, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := n.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(n)
}
