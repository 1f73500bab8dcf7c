package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if _, err := openDatabase(cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "tasks, preferences and profiles are ready (%s)\n", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
