package tx

import (
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// ApplyContext provides context for transaction application
type ApplyContext struct {
	// View is the staged state of this call. Writes through it are discarded
	// unless Apply returns TesSUCCESS.
	View LedgerView

	// Account is the signer of the transaction
	Account solana.PublicKey

	Hooks  HookRegistry
	Config EngineConfig
	Logger *zap.Logger
}
