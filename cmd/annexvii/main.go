package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenlist/annexvii/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "annexvii",
		Short: "Annex VII waste-export declaration tools",
		Long: `annexvii validates and records Annex VII declarations for regulated
waste exports: bulk CSV validation, declaration records, and the
reference lists the rules check against.`,
	}

	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.RefdataCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
