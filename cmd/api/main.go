package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexalab/demostore_api/internal/config"
	"github.com/hexalab/demostore_api/internal/database"
	"github.com/hexalab/demostore_api/internal/handler"
	"github.com/hexalab/demostore_api/internal/middleware"
	"github.com/hexalab/demostore_api/internal/repository"
	"github.com/hexalab/demostore_api/internal/service"
	"github.com/hexalab/demostore_api/internal/storage"
)

// main is the entrypoint for the product catalog backend.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateCatalog(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Initialize upload storage
	fileStore, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		log.Error().Err(err).Msg("upload storage initialization failed")
		fmt.Fprintf(os.Stderr, "upload storage initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// 6. Initialize services
	productSvc := service.NewProductService(productRepo, fileStore)
	imageSvc := service.NewImageService(productRepo, imageRepo, fileStore)

	// 7. Initialize handlers
	productHandler := handler.NewProductHandler(productSvc)
	imageHandler := handler.NewImageHandler(imageSvc)
	healthHandler := handler.NewHealthHandler()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", healthHandler.GetHealth)

	router.POST("/products", productHandler.CreateProduct)
	router.GET("/products", productHandler.ListProducts)
	router.PUT("/products/:id", productHandler.UpdateProduct)
	router.DELETE("/products/:id", productHandler.DeleteProduct)

	router.GET("/products/:id/images", imageHandler.ListImages)
	router.POST("/products/:id/images", imageHandler.UploadImages)
	router.DELETE("/products/:id/images/:imageId", imageHandler.DeleteImage)

	// Uploaded files are served read-only from the managed directory.
	router.Static(storage.URLPrefix, fileStore.Dir())

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// runMigrations applies database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
