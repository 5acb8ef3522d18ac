package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cradle/internal/db"
	"github.com/example/cradle/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo data",
		Long: `Insert a few days of plausible sleep, feeding, diaper and temperature
events so the API and advisor have something to show. Intended for trying
cradle out, not for a database that already holds real entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Open(wire.Config().DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := db.SeedDemoData(database, wire.Location()); err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}

			fmt.Println("✓ Seeded demo data")
			return nil
		},
	}
}
