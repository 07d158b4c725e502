package cli

import (
	"encoding/json"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/core/tx"
)

// TxOutput is printed for every submitted call.
type TxOutput struct {
	Type     string       `json:"type"`
	Account  string       `json:"account"`
	Result   string       `json:"result"`
	Code     int          `json:"code"`
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Error    string       `json:"error,omitempty"`
	Metadata *tx.Metadata `json:"metadata,omitempty"`
}

// ErrRejected is returned after printing a call that did not commit.
type ErrRejected struct {
	Result tx.Result
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("transaction rejected: %s", e.Result)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// submit applies txn, prints its outcome and fails the command unless it
// committed.
func submit(cmd *cobra.Command, n *node, txn tx.Transaction) error {
	res := n.engine.Apply(cmd.Context(), txn)
	out := TxOutput{
		Type:     txn.TxType().String(),
		Account:  txn.GetCommon().Account.String(),
		Result:   res.Result.String(),
		Code:     int(res.Result),
		Success:  res.Result.IsSuccess(),
		Message:  res.Result.Message(),
		Metadata: res.Metadata,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	if err := printJSON(cmd, out); err != nil {
		return err
	}
	if !out.Success {
		return &ErrRejected{Result: res.Result}
	}
	return nil
}

// signer returns the account given by --as.
func signer(cmd *cobra.Command) (solana.PublicKey, error) {
	s, _ := cmd.Flags().GetString("as")
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("--as is required")
	}
	return parseKey("as", s)
}

// keyFlag parses a base58 key flag. Unset optional flags return the zero key.
func keyFlag(cmd *cobra.Command, name string, required bool) (solana.PublicKey, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		if required {
			return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
		}
		return solana.PublicKey{}, nil
	}
	return parseKey(name, s)
}

func parseKey(name, s string) (solana.PublicKey, error) {
	k, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return k, nil
}

func uintFlag(cmd *cobra.Command, name string) uint64 {
	v, _ := cmd.Flags().GetUint64(name)
	return v
}
