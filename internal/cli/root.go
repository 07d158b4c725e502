// Package cli implements the ammd command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the ammd release.
const Version = "0.1.0-dev"

// NewRootCmd builds the ammd command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ammd",
		Short: "goAMMd - constant-product AMM ledger",
		Long: `goAMMd runs a constant-product AMM on a local ledger: pools of two assets,
proportional liquidity shares, swaps, and a bridge that wraps a transfer-restricted
asset into a freely tradable proxy token.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("conf", "", "configuration file path (default ./ammd.toml if present)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("ledger", "", "ledger backend (memory, pebble, leveldb)")
	flags.String("ledger-path", "", "ledger database directory")
	flags.String("metrics-file", "", "write prometheus metrics to this file on exit")
	flags.String("as", "", "signing account (base58)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPoolCmd(),
		newDepositCmd(),
		newWithdrawCmd(),
		newSwapCmd(),
		newBridgeCmd(),
		newTokenCmd(),
		newHookCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

// Execute runs the command line. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newViper returns a viper instance with the global flags bound to their
// configuration keys.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	binds := map[string]string{
		"log.level":      "log-level",
		"ledger.backend": "ledger",
		"ledger.path":    "ledger-path",
	}
	for key, name := range binds {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		v.Set("log.level", "debug")
	}
	return v, nil
}
