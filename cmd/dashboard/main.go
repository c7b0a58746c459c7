package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexalab/demostore_api/internal/cache"
	"github.com/hexalab/demostore_api/internal/config"
	"github.com/hexalab/demostore_api/internal/handler"
	"github.com/hexalab/demostore_api/internal/middleware"
	"github.com/hexalab/demostore_api/pkg/ninjas"
)

// main is the entrypoint for the bitcoin price dashboard backend.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateDashboard(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting bitcoin dashboard")

	// 3. Initialize api-ninjas client
	ninjasClient := ninjas.NewClient(ninjas.Config{
		APIKey:  cfg.Ninjas.APIKey,
		BaseURL: cfg.Ninjas.BaseURL,
	})

	// 3a. Optional Redis-backed price cache
	var priceCache *cache.PriceCache
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - price caching disabled")
		} else {
			defer redisClient.Close()
			priceCache = cache.NewPriceCache(redisClient, cfg.Ninjas.CacheTTL)
			log.Info().Dur("ttl", cfg.Ninjas.CacheTTL).Msg("price cache enabled")
		}
	}

	// 4. Initialize handlers
	bitcoinHandler := handler.NewBitcoinHandler(ninjasClient, priceCache)
	healthHandler := handler.NewHealthHandler()

	// 5. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.LoggingMiddleware())

	router.GET("/bitcoin-info", bitcoinHandler.GetBitcoinInfo)
	router.GET("/health", healthHandler.GetHealth)

	// 6. Start HTTP server
	port := cfg.Port
	if os.Getenv("PORT") == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 7. Wait for interrupt signal
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

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
