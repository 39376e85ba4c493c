package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "console",
		Short:        "Blytz console: landing page and customer dashboard",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ./config.yaml or ./configs/config.yaml)")

	root.AddCommand(serveCmd(), routesCmd())
	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
