package cli

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/config"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/logger"
)

// bootstrap loads configuration, builds the logger and opens the database.
// Every command starts here so they all read the same environment.
func bootstrap() (*config.Config, *zap.Logger, *sqlx.DB, error) {
	_ = godotenv.Load() // .env is optional

	cfg := config.LoadEnv()
	log := logger.New(cfg)

	database, err := db.New(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database: %w", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("schema: %w", err)
	}

	log.Info("connected to database", zap.String("driver", cfg.Database.Driver))
	return cfg, log, database, nil
}
