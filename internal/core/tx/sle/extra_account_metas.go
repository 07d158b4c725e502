package sle

import (
	"fmt"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry"
	solana "github.com/gagliardetto/solana-go"
)

// MetaKind says how an extra account is located at execution time.
type MetaKind uint8

const (
	// MetaFixed is a literal address.
	MetaFixed MetaKind = iota
	// MetaAssociated is the associated account of the keys at OwnerIndex and MintIndex.
	MetaAssociated
)

// Indices 0-3 of a hook execution are fixed: source account, mint,
// destination account, source owner. Index 4 is the metadata list itself.
const (
	IndexSource      = 0
	IndexMint        = 1
	IndexDestination = 2
	IndexOwner       = 3
	IndexMetaList    = 4
	FirstExtraIndex  = 5
)

// AccountMeta describes one extra account a transfer hook needs.
type AccountMeta struct {
	Kind       MetaKind
	Key        solana.PublicKey
	OwnerIndex uint8
	MintIndex  uint8
	IsSigner   bool
	IsWritable bool
}

// ExtraAccountMetaListData lists the accounts appended after the fixed
// indices of a hook execution, starting at FirstExtraIndex.
type ExtraAccountMetaListData struct {
	Mint  solana.PublicKey
	Metas []AccountMeta
}

// Encode serializes the list.
func (l *ExtraAccountMetaListData) Encode() ([]byte, error) {
	return encode(entry.TypeExtraAccountMetaList, l)
}

// Resolve returns the full account list for one hook execution: the fixed
// accounts followed by every extra account, each resolved against the
// keys before it.
func (l *ExtraAccountMetaListData) Resolve(fixed [FirstExtraIndex]solana.PublicKey) ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, 0, FirstExtraIndex+len(l.Metas))
	keys = append(keys, fixed[:]...)
	for i, m := range l.Metas {
		switch m.Kind {
		case MetaFixed:
			keys = append(keys, m.Key)
		case MetaAssociated:
			if int(m.OwnerIndex) >= len(keys) || int(m.MintIndex) >= len(keys) {
				return nil, fmt.Errorf("sle: extra account %d refers forward", FirstExtraIndex+i)
			}
			addr, _, err := solana.FindAssociatedTokenAddress(keys[m.OwnerIndex], keys[m.MintIndex])
			if err != nil {
				return nil, err
			}
			keys = append(keys, addr)
		default:
			return nil, fmt.Errorf("sle: unknown meta kind %d", m.Kind)
		}
	}
	return keys, nil
}

// ParseExtraAccountMetaList parses an ExtraAccountMetaList ledger entry from binary data
func ParseExtraAccountMetaList(data []byte) (*ExtraAccountMetaListData, error) {
	l := &ExtraAccountMetaListData{}
	if err := decode(entry.TypeExtraAccountMetaList, data, l); err != nil {
		return nil, err
	}
	return l, nil
}
