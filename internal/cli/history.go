package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAMMd/internal/storage/history"
)

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Query applied calls",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded calls, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := keyFlag(cmd, "account", false)
			if err != nil {
				return err
			}
			f := history.Filter{}
			if !account.IsZero() {
				f.Account = account.String()
			}
			f.Type, _ = cmd.Flags().GetString("type")
			f.Failed, _ = cmd.Flags().GetBool("failed")
			f.Limit, _ = cmd.Flags().GetInt("limit")

			return withNode(cmd, func(n *node) error {
				if n.history == nil {
					return errors.New("history is disabled")
				}
				entries, err := n.history.List(cmd.Context(), f)
				if err != nil {
					return err
				}
				if entries == nil {
					entries = []history.Entry{}
				}
				return printJSON(cmd, entries)
			})
		},
	}
	listCmd.Flags().String("account", "", "only calls signed by this account")
	listCmd.Flags().String("type", "", "only calls of this type (e.g. Swap)")
	listCmd.Flags().Bool("failed", false, "only calls that did not commit")
	listCmd.Flags().Int("limit", 50, "maximum number of calls (0 for all)")

	historyCmd.AddCommand(listCmd)
	return historyCmd
}
