package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/core/tx/hook"
)

func newHookCmd() *cobra.Command {
	hookCmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage the transfer fee hook",
	}

	initMetasCmd := &cobra.Command{
		Use:   "init-metas",
		Short: "Write the fee hook's account list for a mint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := signer(cmd)
			if err != nil {
				return err
			}
			mint, err := keyFlag(cmd, "mint", true)
			if err != nil {
				return err
			}
			txn := hook.NewInitializeExtraAccountMetaList(account, mint)
			return withNode(cmd, func(n *node) error { return submit(cmd, n, txn) })
		},
	}
	initMetasCmd.Flags().String("mint", "", "hooked mint")

	hookCmd.AddCommand(initMetasCmd)
	return hookCmd
}
