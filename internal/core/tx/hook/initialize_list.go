package hook

import (
	"errors"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeInitializeExtraAccountMetaList, func() tx.Transaction {
		return &InitializeExtraAccountMetaList{BaseTx: *tx.NewBaseTx(tx.TypeInitializeExtraAccountMetaList, solana.PublicKey{})}
	})
}

// InitializeExtraAccountMetaList writes the account list the fee hook
// resolves for a mint. The list can be written once per mint.
type InitializeExtraAccountMetaList struct {
	tx.BaseTx

	Mint solana.PublicKey `json:"Mint"`
}

// NewInitializeExtraAccountMetaList creates a new InitializeExtraAccountMetaList transaction
func NewInitializeExtraAccountMetaList(account, mint solana.PublicKey) *InitializeExtraAccountMetaList {
	return &InitializeExtraAccountMetaList{
		BaseTx: *tx.NewBaseTx(tx.TypeInitializeExtraAccountMetaList, account),
		Mint:   mint,
	}
}

// Validate validates the InitializeExtraAccountMetaList transaction
func (i *InitializeExtraAccountMetaList) Validate() error {
	if err := i.BaseTx.Validate(); err != nil {
		return err
	}
	if i.Mint.IsZero() {
		return errors.New("temMALFORMED: Mint is required")
	}
	return nil
}

// ExtraAccountMetas returns the fee hook's account list.
func ExtraAccountMetas() []sle.AccountMeta {
	return []sle.AccountMeta{
		{Kind: sle.MetaFixed, Key: keylet.NativeMint},
		{Kind: sle.MetaFixed, Key: solana.TokenProgramID},
		{Kind: sle.MetaFixed, Key: solana.SPLAssociatedTokenAccountProgramID},
		{Kind: sle.MetaFixed, Key: keylet.Delegate().Address()},
		{Kind: sle.MetaAssociated, OwnerIndex: IndexDelegate, MintIndex: IndexSideMint, IsWritable: true},
		{Kind: sle.MetaAssociated, OwnerIndex: sle.IndexOwner, MintIndex: IndexSideMint, IsWritable: true},
	}
}

func (i *InitializeExtraAccountMetaList) Footprint(*tx.FootprintContext) (*tx.Footprint, error) {
	return tx.NewFootprint().
		Write(keylet.ExtraAccountMetas(i.Mint), keylet.TokenAccount(keylet.Delegate().Key, keylet.NativeMint)).
		Read(keylet.Mint(i.Mint), keylet.Mint(keylet.NativeMint)), nil
}

// Apply writes the list and opens the delegate's side-asset account if
// it does not exist yet.
func (i *InitializeExtraAccountMetaList) Apply(ctx *tx.ApplyContext) tx.Result {
	tl := token.New(ctx.View, ctx.Hooks)
	if _, err := tl.Mint(keylet.Mint(i.Mint)); err != nil {
		return tx.ResultOf(tx.Wrap(tx.TecINVALID_TOKEN, err))
	}

	data, err := (&sle.ExtraAccountMetaListData{Mint: i.Mint, Metas: ExtraAccountMetas()}).Encode()
	if err != nil {
		return tx.TefINTERNAL
	}
	listKey := keylet.ExtraAccountMetas(i.Mint)
	if err := ctx.View.Insert(listKey, data); err != nil {
		return tx.ResultOf(err)
	}

	delegate := keylet.Delegate().Address()
	side := keylet.TokenAccount(delegate, keylet.NativeMint)
	exists, err := ctx.View.Exists(side)
	if err != nil {
		return tx.ResultOf(err)
	}
	if !exists {
		if err := tl.InitializeAccount(side, keylet.NativeMint, delegate); err != nil {
			return tx.ResultOf(err)
		}
	}

	ctx.Logger.Info("extra account metas initialized",
		zap.Stringer("mint", i.Mint),
		zap.Stringer("list", listKey.Address()),
	)
	return tx.TesSUCCESS
}
