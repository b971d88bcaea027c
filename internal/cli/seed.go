package cli

import (
	"context"

	"github.com/spf13/cobra"

	catrepo "github.com/evimeria/catalog-service/internal/category/repository"
	"github.com/evimeria/catalog-service/internal/seed"
	subrepo "github.com/evimeria/catalog-service/internal/subcategory/repository"
	userrepo "github.com/evimeria/catalog-service/internal/user/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the initial catalog taxonomy",
	Long:  "Creates the launch categories and subcategories. Safe to re-run: existing entries are left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, database, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer database.Close()

		seeder := seed.New(
			catrepo.NewPGRepository(database),
			subrepo.NewPGRepository(database),
			userrepo.NewPGRepository(database),
			log,
		)
		return seeder.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
