// @title Blog Backend API
// @version 1.0
// @description REST backend providing user registration/login and CRUD on blog posts

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"

	_ "BLOG_BACK-END/docs" // This is required for swagger
	"BLOG_BACK-END/internal/config"
	"BLOG_BACK-END/internal/handlers"
	"BLOG_BACK-END/internal/logger"
	"BLOG_BACK-END/internal/routes"
	"BLOG_BACK-END/internal/store"
	"BLOG_BACK-END/migrations"
)

func main() {
	log := logger.NewLogger("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	pool, err := store.NewConnectPostgres(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Apply migrations through a stdlib handle over the same pool.
	if err := migrations.Migrate(stdlib.OpenDBFromPool(pool)); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	// Repositories
	userRepository := store.NewUserRepository(pool, log)
	postRepository := store.NewPostRepository(pool, log)

	// HTTP handlers
	authHandler := handlers.NewAuthHandler(userRepository, &cfg.JWT, log)
	postHandler := handlers.NewPostHandler(postRepository, log)
	healthHandler := handlers.NewHealthHandler(pool)

	router := routes.Setup(authHandler, postHandler, healthHandler, &cfg.JWT, log)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	// Wait for SIGINT/SIGTERM for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
