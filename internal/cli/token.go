package cli

import (
	solana "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/token"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/core/tx/asset"
)

func newTokenCmd() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Create mints and accounts and move tokens",
	}

	createMintCmd := &cobra.Command{
		Use:   "create-mint",
		Short: "Create a mint with the signer as mint authority",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			address, err := keyFlag(cmd, "address", true)
			if err != nil {
				return err
			}
			decimals, _ := cmd.Flags().GetUint8("decimals")
			txn := asset.NewCreateMint(account, address, decimals)
			if hooked, _ := cmd.Flags().GetBool("hooked"); hooked {
				program := keylet.HookProgramID
				txn.TransferHookProgram = &program
			}
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	createMintCmd.Flags().String("address", "", "mint address")
	createMintCmd.Flags().Uint8("decimals", 6, "decimal places")
	createMintCmd.Flags().Bool("hooked", false, "run the fee hook on every transfer")

	createAccountCmd := &cobra.Command{
		Use:   "create-account",
		Short: "Open the associated account of an owner for a mint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			mint, err := keyFlag(cmd, "mint", true)
			if err != nil {
				return err
			}
			owner, err := keyFlag(cmd, "owner", false)
			if err != nil {
				return err
			}
			txn := asset.NewCreateAccount(account, owner, mint)
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	createAccountCmd.Flags().String("mint", "", "mint address")
	createAccountCmd.Flags().String("owner", "", "account owner (default the signer)")

	mintToCmd := &cobra.Command{
		Use:   "mint-to",
		Short: "Issue new supply to an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return transferLike(cmd, "to", func(account, mint, dest solana.PublicKey, amount uint64) tx.Transaction {
				return asset.NewMintTo(account, mint, dest, amount)
			})
		},
	}
	mintToCmd.Flags().String("mint", "", "mint address")
	mintToCmd.Flags().String("to", "", "receiving owner")
	mintToCmd.Flags().Uint64("amount", 0, "amount to issue")

	approveCmd := &cobra.Command{
		Use:   "approve",
		Short: "Let a delegate spend from the signer's account",
		Long: `Approve a delegate on the signer's account of --mint. Without --delegate the
fee hook delegate is approved, which restricted-asset transfers require.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			mint, err := keyFlag(cmd, "mint", true)
			if err != nil {
				return err
			}
			delegate, err := keyFlag(cmd, "delegate", false)
			if err != nil {
				return err
			}
			if delegate.IsZero() {
				delegate = keylet.Delegate().Address()
			}
			txn := asset.NewApprove(account, mint, delegate, uintFlag(cmd, "amount"))
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	approveCmd.Flags().String("mint", keylet.NativeMint.String(), "mint address")
	approveCmd.Flags().String("delegate", "", "delegate (default the fee hook delegate)")
	approveCmd.Flags().Uint64("amount", 0, "allowance")

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move tokens to another owner's account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return transferLike(cmd, "to", func(account, mint, dest solana.PublicKey, amount uint64) tx.Transaction {
				return asset.NewTransfer(account, mint, dest, amount)
			})
		},
	}
	transferCmd.Flags().String("mint", "", "mint address")
	transferCmd.Flags().String("to", "", "receiving owner")
	transferCmd.Flags().Uint64("amount", 0, "amount to move")

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Print an owner's balance of a mint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mint, err := keyFlag(cmd, "mint", true)
			if err != nil {
				return err
			}
			owner, err := keyFlag(cmd, "owner", true)
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				k := keylet.TokenAccount(owner, mint)
				tl := token.New(n.view, nil)
				out := balanceOutput{Owner: owner.String(), Mint: mint.String(), Account: k.Address().String()}
				a, err := tl.Account(k)
				switch {
				case tx.ResultOf(err) == tx.TecNO_ENTRY:
				case err != nil:
					return err
				default:
					out.Exists = true
					out.Amount = a.Amount
					if a.HasDelegate {
						out.Delegate = a.Delegate.String()
						out.DelegatedAmount = a.DelegatedAmount
					}
				}
				return printJSON(cmd, out)
			})
		},
	}
	balanceCmd.Flags().String("mint", "", "mint address")
	balanceCmd.Flags().String("owner", "", "account owner")

	tokenCmd.AddCommand(createMintCmd, createAccountCmd, mintToCmd, approveCmd, transferCmd, balanceCmd)
	return tokenCmd
}

type balanceOutput struct {
	Owner           string `json:"owner"`
	Mint            string `json:"mint"`
	Account         string `json:"account"`
	Exists          bool   `json:"exists"`
	Amount          uint64 `json:"amount"`
	Delegate        string `json:"delegate,omitempty"`
	DelegatedAmount uint64 `json:"delegated_amount,omitempty"`
}

// transferLike submits a call moving --amount of --mint to the owner
// named by the destFlag flag.
func transferLike(cmd *cobra.Command, destFlag string, build func(account, mint, dest solana.PublicKey, amount uint64) tx.Transaction) error {
	account, err := signer(cmd)
	if err != nil {
		return err
	}
	mint, err := keyFlag(cmd, "mint", true)
	if err != nil {
		return err
	}
	dest, err := keyFlag(cmd, destFlag, true)
	if err != nil {
		return err
	}
	txn := build(account, mint, dest, uintFlag(cmd, "amount"))
	return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
}
