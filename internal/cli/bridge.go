package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/core/tx/amm"
)

func newBridgeCmd() *cobra.Command {
	bridgeCmd := &cobra.Command{
		Use:   "bridge",
		Short: "Attach a bridge and wrap or unwrap a restricted asset",
	}
	bridgeCmd.PersistentFlags().Uint64("seed", 0, "pool seed")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Attach a bridge for a restricted mint to a pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			restricted, err := keyFlag(cmd, "restricted-mint", true)
			if err != nil {
				return err
			}
			txn := amm.NewBridgeInitialize(account, uintFlag(cmd, "seed"), restricted)
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	initCmd.Flags().String("restricted-mint", "", "mint held in custody by the bridge")

	wrapCmd := &cobra.Command{
		Use:   "wrap",
		Short: "Lock restricted tokens and receive bridge tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			txn := amm.NewWrap(account, uintFlag(cmd, "seed"), uintFlag(cmd, "amount"))
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	wrapCmd.Flags().Uint64("amount", 0, "amount to wrap")

	unwrapCmd := &cobra.Command{
		Use:   "unwrap",
		Short: "Burn bridge tokens and release restricted tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			txn := amm.NewUnwrap(account, uintFlag(cmd, "seed"), uintFlag(cmd, "amount"))
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	unwrapCmd.Flags().Uint64("amount", 0, "amount to unwrap")

	bridgeCmd.AddCommand(initCmd, wrapCmd, unwrapCmd)
	return bridgeCmd
}
