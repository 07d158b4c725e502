package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/core/curve"
	"github.com/LeJamon/goAMMd/internal/core/tx/amm"
)

func newPoolCmd() *cobra.Command {
	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Create, lock and inspect pools",
	}
	poolCmd.PersistentFlags().Uint64("seed", 0, "pool seed")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a pool for two mints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			mintA, err := keyFlag(cmd, "mint-a", true)
			if err != nil {
				return err
			}
			mintB, err := keyFlag(cmd, "mint-b", true)
			if err != nil {
				return err
			}
			authority, err := keyFlag(cmd, "authority", false)
			if err != nil {
				return err
			}
			fee, _ := cmd.Flags().GetUint16("fee")

			txn := amm.NewPoolInitialize(account, uintFlag(cmd, "seed"), fee, mintA, mintB)
			if !authority.IsZero() {
				txn.Authority = &authority
			}
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	initCmd.Flags().String("mint-a", "", "first reserve mint")
	initCmd.Flags().String("mint-b", "", "second reserve mint")
	initCmd.Flags().Uint16("fee", 30, "swap fee in basis points")
	initCmd.Flags().String("authority", "", "account allowed to lock the pool and attach a bridge")

	lockCmd := &cobra.Command{
		Use:   "lock",
		Short: "Stop trading on a pool",
		RunE:  func(cmd *cobra.Command, _ []string) error { return setLock(cmd, true) },
	}
	unlockCmd := &cobra.Command{
		Use:   "unlock",
		Short: "Resume trading on a pool",
		RunE:  func(cmd *cobra.Command, _ []string) error { return setLock(cmd, false) },
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print a pool's configuration and reserves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withNode(cmd, func(n *node) error {
				state, err := amm.ReadPool(n.view, uintFlag(cmd, "seed"))
				if err != nil {
					return err
				}
				return printJSON(cmd, state)
			})
		},
	}

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a swap without executing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bToA, _ := cmd.Flags().GetBool("b-to-a")
			d := curve.DirectionFromBool(!bToA)
			return withNode(cmd, func(n *node) error {
				q, err := amm.Quote(n.view, uintFlag(cmd, "seed"), d, uintFlag(cmd, "amount"))
				if err != nil {
					return err
				}
				return printJSON(cmd, quoteOutput{
					Direction:   d.String(),
					AmountIn:    uintFlag(cmd, "amount"),
					AmountOut:   q.AmountOut,
					Fee:         q.Fee,
					SpotPrice:   q.SpotPrice,
					ExecPrice:   q.ExecPrice,
					PriceImpact: q.PriceImpact,
				})
			})
		},
	}
	quoteCmd.Flags().Uint64("amount", 0, "input amount")
	quoteCmd.Flags().Bool("b-to-a", false, "quote a B to A swap")

	poolCmd.AddCommand(initCmd, lockCmd, unlockCmd, showCmd, quoteCmd)
	return poolCmd
}

type quoteOutput struct {
	Direction   string          `json:"direction"`
	AmountIn    uint64          `json:"amount_in"`
	AmountOut   uint64          `json:"amount_out"`
	Fee         uint64          `json:"fee"`
	SpotPrice   decimal.Decimal `json:"spot_price"`
	ExecPrice   decimal.Decimal `json:"exec_price"`
	PriceImpact decimal.Decimal `json:"price_impact"`
}

func setLock(cmd *cobra.Command, locked bool) error {
	account, err := signer(cmd)
	if err != nil {
		return err
	}
	txn := amm.NewPoolSetLock(account, uintFlag(cmd, "seed"), locked)
	return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
}
