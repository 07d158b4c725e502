package token

import (
	"fmt"
	"math"

	"github.com/LeJamon/goAMMd/internal/core/custody"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	solana "github.com/gagliardetto/solana-go"
)

// Transfer moves amount from one account to another of the same mint.
// When the mint names a transfer hook, the hook runs after the balances
// move and its error rejects the transfer. A zero amount does nothing.
func (l *Ledger) Transfer(from, to keylet.Keylet, amount uint64, signer custody.Signer) error {
	if amount == 0 {
		return nil
	}
	src, err := l.Account(from)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	dst, err := l.Account(to)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if !src.Mint.Equals(dst.Mint) {
		return tx.Errorf(tx.TecINVALID_TOKEN, "mint mismatch: %s -> %s", src.Mint, dst.Mint)
	}
	if err := authorize(src, amount, signer); err != nil {
		return err
	}
	if src.Amount < amount {
		return tx.Errorf(tx.TecINSUFFICIENT_BALANCE, "balance %d below %d", src.Amount, amount)
	}

	if from.Key != to.Key {
		if dst.Amount > math.MaxUint64-amount {
			return tx.Errorf(tx.TecOVERFLOW, "destination balance overflow")
		}
		src.Amount -= amount
		dst.Amount += amount
		if err := l.putAccount(to, dst); err != nil {
			return err
		}
	}
	if err := l.putAccount(from, src); err != nil {
		return err
	}

	mint, err := l.Mint(keylet.Mint(src.Mint))
	if err != nil {
		return err
	}
	if !mint.HasTransferHook {
		return nil
	}
	return l.runHook(mint.TransferHookProgram, tx.HookExecution{
		Source:      from.Address(),
		Mint:        src.Mint,
		Destination: to.Address(),
		Owner:       src.Owner,
		Amount:      amount,
	})
}

func (l *Ledger) runHook(program solana.PublicKey, exec tx.HookExecution) error {
	hook, ok := l.hooks.Hook(program)
	if !ok {
		return tx.Errorf(tx.TecHOOK_VALIDATION_FAILED, "no transfer hook registered for %s", program)
	}
	if err := hook.Execute(l.view, exec); err != nil {
		if tx.ResultOf(err) == tx.TefINTERNAL {
			return tx.Wrap(tx.TecHOOK_VALIDATION_FAILED, err)
		}
		return fmt.Errorf("transfer hook: %w", err)
	}
	return nil
}

// TransferFootprint declares the records a Transfer from -> to touches,
// including whatever the mint's transfer hook needs. Only mint fields
// fixed at creation are consulted.
func TransferFootprint(fc *tx.FootprintContext, fp *tx.Footprint, from, to keylet.Keylet, mint, owner solana.PublicKey) error {
	mintKey := keylet.Mint(mint)
	fp.Write(from, to).Read(mintKey)

	m, err := New(fc.View, fc.Hooks).Mint(mintKey)
	if tx.ResultOf(err) == tx.TecNO_ENTRY {
		// Transfer fails on the missing mint.
		return nil
	}
	if err != nil || !m.HasTransferHook {
		return err
	}
	hook, ok := fc.Hooks.Hook(m.TransferHookProgram)
	if !ok {
		// Transfer fails with TecHOOK_VALIDATION_FAILED.
		return nil
	}
	reads, writes, err := hook.Accounts(fc.View, tx.HookExecution{
		Source:      from.Address(),
		Mint:        mint,
		Destination: to.Address(),
		Owner:       owner,
	})
	if err != nil {
		return err
	}
	fp.Read(reads...).Write(writes...)
	return nil
}
