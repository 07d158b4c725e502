package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/ledger"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/asset"
	jtx "github.com/LeJamon/goAMMd/internal/testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{Driver: DriverSQLite, DSN: "file:h.db"}.Validate())
	require.NoError(t, Config{Driver: DriverPostgres, DSN: "postgres://localhost/ammd"}.Validate())
	require.ErrorIs(t, Config{Driver: "mysql", DSN: "x"}.Validate(), ErrUnknownDriver)
	require.Error(t, Config{Driver: DriverSQLite}.Validate())
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	assert.Equal(t, "a = $1 AND b = $2 LIMIT $3", pg.rebind("a = ? AND b = ? LIMIT ?"))

	lite := &Store{driver: DriverSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
	mint := jtx.MintAddress("usd")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	meta := &tx.Metadata{
		TransactionResult: tx.TesSUCCESS,
		AffectedNodes: []tx.AffectedNode{
			{NodeType: "CreatedNode", LedgerEntryType: "Mint", LedgerIndex: mint.String()},
		},
	}
	entries := []tx.JournalEntry{
		{Type: tx.TypeCreateMint, Account: alice.Address, Result: tx.TesSUCCESS,
			Tx: asset.NewCreateMint(alice.Address, mint, 6), Metadata: meta, Time: at},
		{Type: tx.TypeMintTo, Account: bob.Address, Result: tx.TecINVALID_AUTHORITY,
			Tx: asset.NewMintTo(bob.Address, mint, bob.Address, 5), Time: at.Add(time.Second)},
		{Type: tx.TypeMintTo, Account: alice.Address, Result: tx.TesSUCCESS,
			Tx: asset.NewMintTo(alice.Address, mint, bob.Address, 5), Metadata: &tx.Metadata{}, Time: at.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, s.Record(ctx, e))
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].ID, "newest first")

	first := all[2]
	assert.Equal(t, "CreateMint", first.Type)
	assert.Equal(t, alice.Address.String(), first.Account)
	assert.Equal(t, "tesSUCCESS", first.Result)
	assert.True(t, first.Time.Equal(at))
	require.NotNil(t, first.Metadata)
	assert.Equal(t, 1, first.Metadata.Count("CreatedNode"))
	assert.Equal(t, mint.String(), first.Metadata.AffectedNodes[0].LedgerIndex)

	var decoded asset.CreateMint
	require.NoError(t, json.Unmarshal(first.Tx, &decoded))
	assert.Equal(t, mint, decoded.Address)
	assert.Equal(t, uint8(6), decoded.Decimals)

	failed, err := s.List(ctx, Filter{Failed: true})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, int(tx.TecINVALID_AUTHORITY), failed[0].Code)
	assert.Nil(t, failed[0].Metadata)

	byAccount, err := s.List(ctx, Filter{Account: alice.Address.String(), Type: "MintTo"})
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, int64(3), byAccount[0].ID)

	limited, err := s.List(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEngineJournal(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	alice, bob := jtx.NewAccount("alice"), jtx.NewAccount("bob")
	mint := jtx.MintAddress("usd")

	engine := tx.NewEngine(ledger.NewMemory(), tx.EngineConfig{Workers: 2}, tx.WithJournal(s))
	require.Equal(t, tx.TesSUCCESS, engine.Apply(ctx, asset.NewCreateMint(alice.Address, mint, 6)).Result)
	require.Equal(t, tx.TecINVALID_AUTHORITY, engine.Apply(ctx, asset.NewMintTo(bob.Address, mint, bob.Address, 1)).Result)

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tecINVALID_AUTHORITY", entries[0].Result)
	assert.Equal(t, "tesSUCCESS", entries[1].Result)
	require.NotNil(t, entries[1].Metadata)
	assert.Equal(t, 1, entries[1].Metadata.Count("CreatedNode"))
}

func TestClosedStore(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Record(context.Background(), tx.JournalEntry{}), ErrClosed)
	_, err := s.List(context.Background(), Filter{})
	require.ErrorIs(t, err, ErrClosed)
	require.NoError(t, s.Close())
}
