package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultDependencyInject()
		defer dbPool.Close()

		if err := schemaRepository.Migrate(); err != nil {
			return err
		}
		fmt.Println("✅ Database schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
