package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/cradle/internal/cli"
	"github.com/example/cradle/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cradle",
		Short:   "cradle - personal baby activity tracker",
		Version: version.String(),
		Long: `cradle records sleep, feedings, diapers, temperatures and medicine
in a local SQLite database and suggests the next nap and bedtime.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.EntriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
