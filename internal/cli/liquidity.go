package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/core/tx/amm"
)

func newDepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Add liquidity to a pool",
		Long: `Deposit up to --amount-a and --amount-b. The first deposit into an empty pool
sets its price; later deposits are trimmed to the pool ratio and fail when a side
would exceed its --max.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			a, b := uintFlag(cmd, "amount-a"), uintFlag(cmd, "amount-b")
			maxA, maxB := a, b
			if cmd.Flags().Changed("max-a") {
				maxA = uintFlag(cmd, "max-a")
			}
			if cmd.Flags().Changed("max-b") {
				maxB = uintFlag(cmd, "max-b")
			}
			txn := amm.NewDeposit(account, uintFlag(cmd, "seed"), a, b, maxA, maxB)
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	cmd.Flags().Uint64("seed", 0, "pool seed")
	cmd.Flags().Uint64("amount-a", 0, "amount of mint A offered")
	cmd.Flags().Uint64("amount-b", 0, "amount of mint B offered")
	cmd.Flags().Uint64("max-a", 0, "most of mint A to deposit (default amount-a)")
	cmd.Flags().Uint64("max-b", 0, "most of mint B to deposit (default amount-b)")
	return cmd
}

func newWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Burn pool shares for a proportional part of both reserves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			txn := amm.NewWithdraw(account, uintFlag(cmd, "seed"), uintFlag(cmd, "lp"),
				uintFlag(cmd, "min-a"), uintFlag(cmd, "min-b"))
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	cmd.Flags().Uint64("seed", 0, "pool seed")
	cmd.Flags().Uint64("lp", 0, "pool shares to burn")
	cmd.Flags().Uint64("min-a", 0, "least of mint A to receive")
	cmd.Flags().Uint64("min-b", 0, "least of mint B to receive")
	return cmd
}

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Trade one pool asset for the other",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			bToA, _ := cmd.Flags().GetBool("b-to-a")
			txn := amm.NewSwap(account, uintFlag(cmd, "seed"), uintFlag(cmd, "amount"), !bToA, uintFlag(cmd, "min-out"))
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	cmd.Flags().Uint64("seed", 0, "pool seed")
	cmd.Flags().Uint64("amount", 0, "input amount, fee included")
	cmd.Flags().Bool("b-to-a", false, "sell mint B instead of mint A")
	cmd.Flags().Uint64("min-out", 0, "least output to accept")
	return cmd
}
