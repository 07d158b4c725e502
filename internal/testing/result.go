package testing

import "github.com/LeJamon/goAMMd/internal/core/tx"

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the transaction engine result code (e.g., "tesSUCCESS").
	Code string

	// Success indicates whether the transaction was applied.
	Success bool

	// Message provides additional details about the result.
	Message string

	// Result is the typed result code.
	Result tx.Result

	// Metadata lists the records the call changed. Nil unless Success.
	Metadata *tx.Metadata
}

func newTxResult(res tx.ApplyResult) TxResult {
	msg := res.Result.Message()
	if res.Err != nil {
		msg = res.Err.Error()
	}
	return TxResult{
		Code:     res.Result.String(),
		Success:  res.Result.IsSuccess(),
		Message:  msg,
		Result:   res.Result,
		Metadata: res.Metadata,
	}
}

// IsTec reports whether the call failed against ledger state.
func (r TxResult) IsTec() bool {
	return r.Result.IsTec()
}

// IsMalformed reports whether the call was rejected before reading state.
func (r TxResult) IsMalformed() bool {
	return r.Result.IsTem()
}
