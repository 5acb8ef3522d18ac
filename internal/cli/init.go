package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/cradle/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var timezone string
	var addr string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.json",
		Long: `Create the cradle data directory and write a config.json with
defaults, ready to be edited. Refuses to overwrite an existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.DataDir()
			if err != nil {
				return err
			}

			path := filepath.Join(dir, "config.json")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}

			cfg := &config.Config{
				Version:    "1",
				ListenAddr: addr,
				Timezone:   timezone,
			}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", config.DefaultTimezone, "IANA timezone for all timestamps")
	cmd.Flags().StringVar(&addr, "addr", config.DefaultListenAddr, "HTTP listen address")

	return cmd
}
