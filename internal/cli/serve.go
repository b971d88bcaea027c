package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/internal/cache"
	cathandler "github.com/evimeria/catalog-service/internal/category/handler"
	catrepo "github.com/evimeria/catalog-service/internal/category/repository"
	catusecase "github.com/evimeria/catalog-service/internal/category/usecase"
	"github.com/evimeria/catalog-service/internal/media"
	prodhandler "github.com/evimeria/catalog-service/internal/product/handler"
	prodrepo "github.com/evimeria/catalog-service/internal/product/repository"
	produsecase "github.com/evimeria/catalog-service/internal/product/usecase"
	"github.com/evimeria/catalog-service/internal/routes"
	"github.com/evimeria/catalog-service/internal/search"
	subhandler "github.com/evimeria/catalog-service/internal/subcategory/handler"
	subrepo "github.com/evimeria/catalog-service/internal/subcategory/repository"
	subusecase "github.com/evimeria/catalog-service/internal/subcategory/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, database, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer database.Close()

		// Repositories
		categoryRepo := catrepo.NewPGRepository(database)
		subCategoryRepo := subrepo.NewPGRepository(database)
		productRepo := prodrepo.NewPGRepository(database)

		// Optional collaborators; both degrade to no-ops when disabled.
		listCache := cache.New(cfg)
		defer listCache.Close()
		if listCache.Enabled() {
			log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
		}

		searchClient, err := search.New(cfg, log)
		if err != nil {
			return err
		}
		if searchClient.Enabled() {
			log.Info("search index enabled", zap.String("addr", cfg.Elastic.Address))
		}

		// Usecases
		categoryUC := catusecase.NewCategoryUseCase(categoryRepo, cfg.Catalog, log)
		subCategoryUC := subusecase.NewSubCategoryUseCase(subCategoryRepo, categoryRepo, cfg.Catalog, log)
		productUC := produsecase.NewProductUseCase(
			productRepo, categoryRepo, subCategoryRepo, listCache, searchClient, cfg.Catalog, log)

		// Handlers
		resolver := media.NewResolver(cfg.Catalog.MediaPrefix)
		handlers := routes.Handlers{
			Categories:    cathandler.NewHandler(categoryUC, resolver, log),
			SubCategories: subhandler.NewHandler(subCategoryUC, log),
			Products:      prodhandler.NewHandler(productUC, resolver, log),
		}

		if cfg.Server.AppEnv != "development" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := gin.New()
		router.Use(gin.Recovery())
		router.Use(cors.Default())
		routes.Register(router, handlers, cfg.JWT.SecretKey)

		srv := &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		}

		go func() {
			log.Info("http server listening", zap.String("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("http server failed", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
