package ledger

import (
	"testing"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) keylet.Keylet {
	var k [32]byte
	k[0] = b
	return keylet.Mint(k)
}

func TestMemoryView(t *testing.T) {
	m := NewMemory()

	data, err := m.Read(key(1))
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, m.Insert(key(1), []byte("one")))
	require.ErrorIs(t, m.Insert(key(1), []byte("again")), ErrEntryExists)
	require.ErrorIs(t, m.Update(key(2), []byte("two")), ErrEntryNotFound)

	require.NoError(t, m.Update(key(1), []byte("uno")))
	data, err = m.Read(key(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("uno"), data)

	data[0] = 'X'
	again, _ := m.Read(key(1))
	assert.Equal(t, []byte("uno"), again, "reads return copies")

	require.NoError(t, m.Erase(key(1)))
	ok, err := m.Exists(key(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryApplyChangesIsAllOrNothing(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Insert(key(1), []byte("one")))

	err := m.ApplyChanges([]tx.Change{
		{Action: tx.ActionInsert, Key: key(2).Key, Data: []byte("two")},
		{Action: tx.ActionErase, Key: key(3).Key},
	})
	require.ErrorIs(t, err, ErrEntryNotFound)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryForEachOrdered(t *testing.T) {
	m := NewMemory()
	for _, b := range []byte{3, 1, 2} {
		require.NoError(t, m.Insert(key(b), []byte{b}))
	}

	var seen []byte
	require.NoError(t, m.ForEach(func(k [32]byte, data []byte) bool {
		seen = append(seen, k[0])
		return len(seen) < 2
	}))
	assert.Equal(t, []byte{1, 2}, seen)
}
