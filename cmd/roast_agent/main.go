package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "roast_agent",
		Short:        "Roast SUI wallets based on their on-chain activity",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config (default $CONFIG_PATH or config/config.yaml)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newRoastCmd(&configPath))
	return root
}
