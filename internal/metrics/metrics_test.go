package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/asset"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
)

func TestObserveApply(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveApply(tx.TypeSwap, tx.TesSUCCESS, time.Millisecond)
	m.ObserveApply(tx.TypeSwap, tx.TesSUCCESS, time.Millisecond)
	m.ObserveApply(tx.TypeSwap, tx.TecSLIPPAGE_EXCEEDED, time.Millisecond)
	m.ObserveApply(tx.TypeDeposit, tx.TemINVALID_AMOUNT, 0)
	m.ObserveApply(tx.TypeWrap, tx.TefBAD_FOOTPRINT, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Applied.WithLabelValues("Swap", "tesSUCCESS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Applied.WithLabelValues("Swap", "tecSLIPPAGE_EXCEEDED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("tec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("tem")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("tef")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Rejected))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Duration))
}

func TestEngineRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	alice := jtx.NewAccount("alice")
	mint := jtx.MintAddress("usd")

	engine := tx.NewEngine(ledger.NewMemory(), tx.EngineConfig{}, tx.WithMetrics(m))
	ctx := context.Background()
	require.True(t, engine.Apply(ctx, asset.NewCreateMint(alice.Address, mint, 6)).Result.IsSuccess())
	require.Equal(t, tx.TecDUPLICATE, engine.Apply(ctx, asset.NewCreateMint(alice.Address, mint, 6)).Result)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Applied.WithLabelValues("CreateMint", "tesSUCCESS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Applied.WithLabelValues("CreateMint", "tecDUPLICATE")))

	n, err := testutil.GatherAndCount(reg, "ammd_engine_apply_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
