package sle

import (
	"testing"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsWrongType(t *testing.T) {
	mint := &MintData{Decimals: 6, Supply: 10}
	data, err := mint.Encode()
	require.NoError(t, err)

	typ, err := EntryType(data)
	require.NoError(t, err)
	assert.Equal(t, entry.TypeMint, typ)

	_, err = ParseTokenAccount(data)
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = ParseMint(data[:1])
	require.ErrorIs(t, err, ErrShortEntry)
}

func TestPoolConfigKeepsOptionalFields(t *testing.T) {
	auth := solana.NewWallet().PublicKey()
	cfg := &PoolConfigData{
		Seed:         3,
		HasAuthority: true,
		Authority:    auth,
		MintA:        solana.NewWallet().PublicKey(),
		MintB:        solana.WrappedSol,
		FeeBps:       30,
		ConfigBump:   254,
	}
	data, err := cfg.Encode()
	require.NoError(t, err)

	got, err := ParsePoolConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	in, out := got.Mints(false)
	assert.Equal(t, cfg.MintB, in)
	assert.Equal(t, cfg.MintA, out)
}

func TestResolveExtraAccounts(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	side := solana.WrappedSol
	delegate := solana.NewWallet().PublicKey()

	list := &ExtraAccountMetaListData{
		Metas: []AccountMeta{
			{Kind: MetaFixed, Key: side},
			{Kind: MetaFixed, Key: delegate, IsWritable: true},
			{Kind: MetaAssociated, OwnerIndex: 6, MintIndex: 5, IsWritable: true},
			{Kind: MetaAssociated, OwnerIndex: IndexOwner, MintIndex: 5, IsWritable: true},
		},
	}
	data, err := list.Encode()
	require.NoError(t, err)
	list, err = ParseExtraAccountMetaList(data)
	require.NoError(t, err)

	var fixed [FirstExtraIndex]solana.PublicKey
	fixed[IndexOwner] = owner
	keys, err := list.Resolve(fixed)
	require.NoError(t, err)
	require.Len(t, keys, 9)

	delegateATA, _, err := solana.FindAssociatedTokenAddress(delegate, side)
	require.NoError(t, err)
	ownerATA, _, err := solana.FindAssociatedTokenAddress(owner, side)
	require.NoError(t, err)
	assert.Equal(t, delegateATA, keys[7])
	assert.Equal(t, ownerATA, keys[8])

	bad := &ExtraAccountMetaListData{Metas: []AccountMeta{{Kind: MetaAssociated, OwnerIndex: 9, MintIndex: 1}}}
	_, err = bad.Resolve(fixed)
	require.Error(t, err)
}
