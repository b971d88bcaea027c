package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	catrepo "github.com/evimeria/catalog-service/internal/category/repository"
	"github.com/evimeria/catalog-service/internal/seed"
	subrepo "github.com/evimeria/catalog-service/internal/subcategory/repository"
	userrepo "github.com/evimeria/catalog-service/internal/user/repository"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or promote an administrative user",
	Long:  "Creates an admin account, or promotes the user if the username already exists.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminUsername == "" || adminPassword == "" {
			return fmt.Errorf("--username and --password are required")
		}

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
		return seeder.CreateAdmin(context.Background(), adminUsername, adminEmail, adminPassword)
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	rootCmd.AddCommand(createAdminCmd)
}
