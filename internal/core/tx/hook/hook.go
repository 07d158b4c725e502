// Package hook is the transfer validator attached to restricted mints.
// Every transfer of such a mint pays a fee of one tenth of a percent in
// the native side asset, collected by the hook's delegate out of an
// allowance the sender granted beforehand.
package hook

import (
	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/sle"
	solana "github.com/gagliardetto/solana-go"
)

// delegates signs for the fee delegate.
var delegates = custody.MustClaim(keylet.HookProgramID)

// FeeDivisor sets the hook fee at amount/FeeDivisor.
const FeeDivisor = 1000

// Positions of the extra accounts in a resolved hook execution.
const (
	IndexSideMint            = 5
	IndexTokenProgram        = 6
	IndexAssociatedProgram   = 7
	IndexDelegate            = 8
	IndexDelegateSideAccount = 9
	IndexSenderSideAccount   = 10
	resolvedAccounts         = 11
)

// Registry returns the hooks known to the ledger host.
func Registry() tx.Hooks {
	return tx.Hooks{keylet.HookProgramID: FeeHook{}}
}

// FeeHook charges the transfer fee.
type FeeHook struct{}

var _ tx.Hook = FeeHook{}

// Fee returns the side-asset fee charged on a transfer of amount.
func Fee(amount uint64) uint64 {
	return amount / FeeDivisor
}

// resolve loads the metadata list of exec.Mint and expands it against
// the fixed accounts of the execution. It returns a nil list when the
// mint has none.
func resolve(view tx.LedgerView, exec tx.HookExecution) (keylet.Keylet, []solana.PublicKey, error) {
	listKey := keylet.ExtraAccountMetas(exec.Mint)
	data, err := view.Read(listKey)
	if err != nil || data == nil {
		return listKey, nil, err
	}
	list, err := sle.ParseExtraAccountMetaList(data)
	if err != nil {
		return listKey, nil, tx.Wrap(tx.TecHOOK_VALIDATION_FAILED, err)
	}
	if !list.Mint.Equals(exec.Mint) {
		return listKey, nil, tx.Errorf(tx.TecHOOK_VALIDATION_FAILED, "metadata list belongs to %s", list.Mint)
	}
	keys, err := list.Resolve([sle.FirstExtraIndex]solana.PublicKey{
		exec.Source, exec.Mint, exec.Destination, exec.Owner, listKey.Address(),
	})
	if err != nil {
		return listKey, nil, tx.Wrap(tx.TecHOOK_VALIDATION_FAILED, err)
	}
	if len(keys) < resolvedAccounts {
		return listKey, nil, tx.Errorf(tx.TecHOOK_VALIDATION_FAILED, "metadata list resolves %d accounts, want %d", len(keys), resolvedAccounts)
	}
	return listKey, keys, nil
}

// Accounts declares the metadata list and both side-asset accounts.
func (FeeHook) Accounts(view tx.LedgerView, exec tx.HookExecution) (reads, writes []keylet.Keylet, err error) {
	listKey, keys, err := resolve(view, exec)
	if err != nil || keys == nil {
		return []keylet.Keylet{listKey}, nil, err
	}
	reads = []keylet.Keylet{listKey, keylet.Mint(keys[IndexSideMint])}
	writes = []keylet.Keylet{
		keylet.AccountAt(keys[IndexDelegateSideAccount]),
		keylet.AccountAt(keys[IndexSenderSideAccount]),
	}
	return reads, writes, nil
}

// Execute moves the fee from the sender's side account to the delegate's.
// The delegate spends the sender's allowance, so a sender that never
// approved the delegate cannot move the restricted asset.
func (FeeHook) Execute(view tx.LedgerView, exec tx.HookExecution) error {
	listKey, keys, err := resolve(view, exec)
	if err != nil {
		return err
	}
	if keys == nil {
		return tx.Errorf(tx.TecNO_ENTRY, "no metadata list %s for mint %s", listKey.Address(), exec.Mint)
	}

	fee := Fee(exec.Amount)
	if fee == 0 {
		return nil
	}

	delegate := keylet.Delegate()
	if !keys[IndexDelegate].Equals(delegate.Address()) {
		return tx.Errorf(tx.TecHOOK_VALIDATION_FAILED, "unexpected delegate %s", keys[IndexDelegate])
	}
	auth, err := delegates.FromBump(delegate.Bump, keylet.DelegateSeeds()...)
	if err != nil {
		return tx.Wrap(tx.TecHOOK_VALIDATION_FAILED, err)
	}
	return token.New(view, nil).Transfer(
		keylet.AccountAt(keys[IndexSenderSideAccount]),
		keylet.AccountAt(keys[IndexDelegateSideAccount]),
		fee,
		auth,
	)
}
