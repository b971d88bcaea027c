package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Storefront product catalog service",
	Long:  "Serves the product catalog API and ships management commands for seeding and administration",
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
