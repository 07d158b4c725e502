package tx

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// Workers bounds how many calls ApplyBatch runs at once.
	// Zero means runtime.NumCPU().
	Workers int

	// Hooks resolves transfer hooks named by mints
	Hooks HookRegistry
}

// Recorder receives one observation per applied call.
type Recorder interface {
	ObserveApply(txType Type, result Result, elapsed time.Duration)
}

// JournalEntry is one applied call, committed or rejected.
type JournalEntry struct {
	Type     Type
	Account  solana.PublicKey
	Result   Result
	Tx       Transaction
	Metadata *Metadata
	Time     time.Time
}

// Journal persists applied calls.
type Journal interface {
	Record(ctx context.Context, entry JournalEntry) error
}

// ApplyResult is the outcome of one call.
type ApplyResult struct {
	Result   Result
	Metadata *Metadata // nil unless Result is TesSUCCESS
	Err      error     // cause of a tef or tem result, when known
}

// Engine processes transactions against a ledger
type Engine struct {
	view    LedgerView
	config  EngineConfig
	locks   *lockTable
	logger  *zap.Logger
	metrics Recorder
	journal Journal
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the recorder notified after every call.
func WithMetrics(r Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithJournal sets the journal every call is written to.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// NewEngine creates an engine applying calls to view.
func NewEngine(view LedgerView, config EngineConfig, opts ...Option) *Engine {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Hooks == nil {
		config.Hooks = Hooks{}
	}
	e := &Engine{
		view:   view,
		config: config,
		locks:  newLockTable(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// View returns the committed ledger view.
func (e *Engine) View() LedgerView {
	return e.view
}

// Hooks returns the hook registry used by applied calls.
func (e *Engine) Hooks() HookRegistry {
	return e.config.Hooks
}

// Apply runs one call to completion. The call's changes are committed
// only when the result is TesSUCCESS.
func (e *Engine) Apply(ctx context.Context, t Transaction) ApplyResult {
	start := time.Now()
	res := e.apply(ctx, t)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.ObserveApply(t.TxType(), res.Result, elapsed)
	}
	if e.journal != nil {
		entry := JournalEntry{
			Type:     t.TxType(),
			Account:  t.GetCommon().Account,
			Result:   res.Result,
			Tx:       t,
			Metadata: res.Metadata,
			Time:     start,
		}
		if err := e.journal.Record(ctx, entry); err != nil {
			e.logger.Error("journal write failed", zap.Stringer("type", t.TxType()), zap.Error(err))
		}
	}

	fields := []zap.Field{
		zap.Stringer("type", t.TxType()),
		zap.Stringer("account", t.GetCommon().Account),
		zap.Stringer("result", res.Result),
		zap.Duration("elapsed", elapsed),
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}
	if res.Result.IsTef() {
		e.logger.Error("transaction failed in engine", fields...)
	} else {
		e.logger.Debug("transaction applied", fields...)
	}
	return res
}

func (e *Engine) apply(ctx context.Context, t Transaction) ApplyResult {
	if err := ctx.Err(); err != nil {
		return ApplyResult{Result: TefFAILURE, Err: err}
	}

	if err := t.Validate(); err != nil {
		return ApplyResult{Result: parseValidationError(err), Err: err}
	}

	account := t.GetCommon().Account
	fp, err := t.Footprint(&FootprintContext{View: e.view, Hooks: e.config.Hooks, Account: account})
	if err != nil {
		return ApplyResult{Result: ResultOf(err), Err: err}
	}

	release := e.locks.acquire(fp)
	defer release()

	table := NewApplyStateTable(e.view, fp)
	actx := &ApplyContext{
		View:    table,
		Account: account,
		Hooks:   e.config.Hooks,
		Config:  e.config,
		Logger:  e.logger.With(zap.Stringer("type", t.TxType())),
	}

	result, err := run(t, actx)
	if v := table.Violation(); v != nil {
		return ApplyResult{Result: TefBAD_FOOTPRINT, Err: v}
	}
	if result != TesSUCCESS {
		return ApplyResult{Result: result, Err: err}
	}

	meta, err := table.Apply()
	if err != nil {
		return ApplyResult{Result: TefINTERNAL, Err: fmt.Errorf("commit: %w", err)}
	}
	meta.TransactionResult = TesSUCCESS
	return ApplyResult{Result: TesSUCCESS, Metadata: meta}
}

// run calls t.Apply, turning a panic into TefEXCEPTION.
func run(t Transaction, ctx *ApplyContext) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = TefEXCEPTION
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Apply(ctx), nil
}

// ApplyBatch applies txs concurrently, at most Workers at a time. Calls
// whose footprints overlap are serialized by record locks; results are
// returned in input order.
func (e *Engine) ApplyBatch(ctx context.Context, txs []Transaction) []ApplyResult {
	results := make([]ApplyResult, len(txs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i, t := range txs {
		g.Go(func() error {
			results[i] = e.Apply(gctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// parseValidationError extracts a result code from a validation error.
// Tagged errors carry their code; otherwise a "temX:" message prefix is
// matched, falling back to TemMALFORMED.
func parseValidationError(err error) Result {
	if r := ResultOf(err); r != TefINTERNAL {
		return r
	}
	msg := err.Error()
	for _, r := range []Result{TemINVALID_AMOUNT, TemINVALID_FEE, TemINVALID_PRECISION, TemUNKNOWN_TYPE, TemMALFORMED} {
		if strings.HasPrefix(msg, r.String()+":") {
			return r
		}
	}
	return TemMALFORMED
}
