package tx

import (
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
)

// Common errors
var (
	ErrMissingAccount = errors.New("temMALFORMED: Account is required")
	ErrInvalidAmount  = errors.New("temINVALID_AMOUNT: amount must be positive")
)

// Type represents a transaction type code
type Type uint16

// All transaction type codes
const (
	TypeInvalid Type = 0xFFFF

	// Pools
	TypePoolInitialize Type = 1
	TypePoolSetLock    Type = 2
	TypeDeposit        Type = 3
	TypeWithdraw       Type = 4
	TypeSwap           Type = 5

	// Bridge
	TypeBridgeInitialize Type = 10
	TypeWrap             Type = 11
	TypeUnwrap           Type = 12

	// Transfer hook
	TypeInitializeExtraAccountMetaList Type = 20

	// Asset layer
	TypeCreateMint    Type = 30
	TypeCreateAccount Type = 31
	TypeMintTo        Type = 32
	TypeApprove       Type = 33
	TypeTransfer      Type = 34
)

var typeNameMap = map[string]Type{
	"PoolInitialize":                 TypePoolInitialize,
	"PoolSetLock":                    TypePoolSetLock,
	"Deposit":                        TypeDeposit,
	"Withdraw":                       TypeWithdraw,
	"Swap":                           TypeSwap,
	"BridgeInitialize":               TypeBridgeInitialize,
	"Wrap":                           TypeWrap,
	"Unwrap":                         TypeUnwrap,
	"InitializeExtraAccountMetaList": TypeInitializeExtraAccountMetaList,
	"CreateMint":                     TypeCreateMint,
	"CreateAccount":                  TypeCreateAccount,
	"MintTo":                         TypeMintTo,
	"Approve":                        TypeApprove,
	"Transfer":                       TypeTransfer,
}

// String returns the transaction type name
func (t Type) String() string {
	for name, typ := range typeNameMap {
		if typ == t {
			return name
		}
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName returns the transaction type for a given name
func TypeFromName(name string) (Type, bool) {
	t, ok := typeNameMap[name]
	return t, ok
}

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks the transaction without reading ledger state
	Validate() error

	// Footprint declares every record Apply may read or write
	Footprint(fc *FootprintContext) (*Footprint, error)

	// Apply executes the transaction against the staged view in ctx
	Apply(ctx *ApplyContext) Result
}

// Common contains fields common to all transaction types
type Common struct {
	Account         solana.PublicKey `json:"Account"`
	TransactionType string           `json:"TransactionType"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account.IsZero() {
		return ErrMissingAccount
	}
	return nil
}

// BaseTx is embedded by every transaction type.
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the common fields
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// NewBaseTx creates a new base transaction
func NewBaseTx(txType Type, account solana.PublicKey) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}
