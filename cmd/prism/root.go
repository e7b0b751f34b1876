package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prism",
		Short:         "Startup catalog",
		Long:          "Prism keeps a catalog of startups in a single persisted slot and serves a local UI over it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (default ./prism.yaml when present)")
	root.AddCommand(newServeCmd(), newListCmd(), newExportCmd())
	return root
}
