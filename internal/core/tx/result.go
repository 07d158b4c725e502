package tx

import (
	"errors"
	"fmt"
)

// Result represents a transaction result code
type Result int

// Transaction result codes, organized by category: tes, tec, tef, tem.
// Every code other than TesSUCCESS discards all state changes of the call.
const (
	// tesSUCCESS
	TesSUCCESS Result = 0

	// tec codes (100-199): the call was well formed but failed against
	// current ledger state
	TecSLIPPAGE_EXCEEDED          Result = 100
	TecCURVE_ERROR                Result = 101
	TecOVERFLOW                   Result = 102
	TecUNDERFLOW                  Result = 103
	TecNO_LIQUIDITY               Result = 104
	TecPOOL_LOCKED                Result = 105
	TecUNAUTHORIZED               Result = 110
	TecNO_AUTHORITY_SET           Result = 111
	TecINVALID_AUTHORITY          Result = 112
	TecALREADY_BRIDGE_POOL        Result = 120
	TecNOT_BRIDGE_POOL            Result = 121
	TecBRIDGE_CONFIG_NOT_SET      Result = 122
	TecINVALID_BRIDGE_MINT        Result = 123
	TecINSUFFICIENT_BRIDGE_TOKENS Result = 124
	TecHOOK_VALIDATION_FAILED     Result = 125
	TecINSUFFICIENT_BALANCE       Result = 130
	TecINVALID_TOKEN              Result = 131
	TecZERO_BALANCE               Result = 132
	TecDUPLICATE                  Result = 140
	TecNO_ENTRY                   Result = 141

	// tef codes (-199 to -100): the engine could not apply the call
	TefFAILURE       Result = -199
	TefINTERNAL      Result = -198
	TefEXCEPTION     Result = -197
	TefBAD_FOOTPRINT Result = -196

	// tem codes (-299 to -200): the call is malformed
	TemMALFORMED         Result = -299
	TemINVALID_AMOUNT    Result = -298
	TemINVALID_FEE       Result = -297
	TemINVALID_PRECISION Result = -296
	TemUNKNOWN_TYPE      Result = -295
)

// String returns the result code name
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecSLIPPAGE_EXCEEDED:
		return "tecSLIPPAGE_EXCEEDED"
	case TecCURVE_ERROR:
		return "tecCURVE_ERROR"
	case TecOVERFLOW:
		return "tecOVERFLOW"
	case TecUNDERFLOW:
		return "tecUNDERFLOW"
	case TecNO_LIQUIDITY:
		return "tecNO_LIQUIDITY"
	case TecPOOL_LOCKED:
		return "tecPOOL_LOCKED"
	case TecUNAUTHORIZED:
		return "tecUNAUTHORIZED"
	case TecNO_AUTHORITY_SET:
		return "tecNO_AUTHORITY_SET"
	case TecINVALID_AUTHORITY:
		return "tecINVALID_AUTHORITY"
	case TecALREADY_BRIDGE_POOL:
		return "tecALREADY_BRIDGE_POOL"
	case TecNOT_BRIDGE_POOL:
		return "tecNOT_BRIDGE_POOL"
	case TecBRIDGE_CONFIG_NOT_SET:
		return "tecBRIDGE_CONFIG_NOT_SET"
	case TecINVALID_BRIDGE_MINT:
		return "tecINVALID_BRIDGE_MINT"
	case TecINSUFFICIENT_BRIDGE_TOKENS:
		return "tecINSUFFICIENT_BRIDGE_TOKENS"
	case TecHOOK_VALIDATION_FAILED:
		return "tecHOOK_VALIDATION_FAILED"
	case TecINSUFFICIENT_BALANCE:
		return "tecINSUFFICIENT_BALANCE"
	case TecINVALID_TOKEN:
		return "tecINVALID_TOKEN"
	case TecZERO_BALANCE:
		return "tecZERO_BALANCE"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TefFAILURE:
		return "tefFAILURE"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefEXCEPTION:
		return "tefEXCEPTION"
	case TefBAD_FOOTPRINT:
		return "tefBAD_FOOTPRINT"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemINVALID_AMOUNT:
		return "temINVALID_AMOUNT"
	case TemINVALID_FEE:
		return "temINVALID_FEE"
	case TemINVALID_PRECISION:
		return "temINVALID_PRECISION"
	case TemUNKNOWN_TYPE:
		return "temUNKNOWN_TYPE"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (ledger state) failure
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (engine) failure
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) failure
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecSLIPPAGE_EXCEEDED:
		return "Slippage exceeded."
	case TecCURVE_ERROR:
		return "Curve error."
	case TecOVERFLOW:
		return "Overflow detected."
	case TecUNDERFLOW:
		return "Underflow detected."
	case TecNO_LIQUIDITY:
		return "No liquidity in pool."
	case TecPOOL_LOCKED:
		return "This pool is locked."
	case TecUNAUTHORIZED:
		return "Caller is not the pool authority."
	case TecNO_AUTHORITY_SET:
		return "No update authority set."
	case TecINVALID_AUTHORITY:
		return "Invalid authority."
	case TecALREADY_BRIDGE_POOL:
		return "Pool is already a bridge pool."
	case TecNOT_BRIDGE_POOL:
		return "Pool is not a bridge pool."
	case TecBRIDGE_CONFIG_NOT_SET:
		return "Bridge config is not set."
	case TecINVALID_BRIDGE_MINT:
		return "Invalid bridge token mint."
	case TecINSUFFICIENT_BRIDGE_TOKENS:
		return "Insufficient bridge tokens."
	case TecHOOK_VALIDATION_FAILED:
		return "Transfer hook validation failed."
	case TecINSUFFICIENT_BALANCE:
		return "Insufficient balance."
	case TecINVALID_TOKEN:
		return "Invalid token."
	case TecZERO_BALANCE:
		return "Zero balance."
	case TecDUPLICATE:
		return "Ledger object already exists."
	case TecNO_ENTRY:
		return "No matching entry found."
	case TefBAD_FOOTPRINT:
		return "Transaction touched a record it did not declare."
	case TefEXCEPTION:
		return "Unexpected program state."
	case TefINTERNAL:
		return "Internal error."
	case TemINVALID_AMOUNT:
		return "Invalid amount."
	case TemINVALID_FEE:
		return "Fee is greater than 100%."
	case TemINVALID_PRECISION:
		return "Invalid precision."
	case TemUNKNOWN_TYPE:
		return "Unknown transaction type."
	case TemMALFORMED:
		return "Malformed transaction."
	default:
		return r.String()
	}
}

// ResultError carries a result code through layers that return error.
type ResultError struct {
	Result Result
	Err    error
}

func (e *ResultError) Error() string {
	if e.Err == nil {
		return e.Result.String()
	}
	return e.Result.String() + ": " + e.Err.Error()
}

func (e *ResultError) Unwrap() error {
	return e.Err
}

// Errorf returns an error tagged with r.
func Errorf(r Result, format string, args ...any) error {
	return &ResultError{Result: r, Err: fmt.Errorf(format, args...)}
}

// Wrap tags err with r unless err is nil.
func Wrap(r Result, err error) error {
	if err == nil {
		return nil
	}
	return &ResultError{Result: r, Err: err}
}

// ResultOf returns the result code carried by err. Untagged errors map to
// TefINTERNAL.
func ResultOf(err error) Result {
	if err == nil {
		return TesSUCCESS
	}
	var re *ResultError
	if errors.As(err, &re) {
		return re.Result
	}
	return TefINTERNAL
}
