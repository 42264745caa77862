package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/movie-kombat/internal/config"
	"github.com/AdamBeresnev/movie-kombat/internal/db"
	"github.com/AdamBeresnev/movie-kombat/internal/metrics"
	"github.com/AdamBeresnev/movie-kombat/internal/movie"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	slog.SetDefault(cfg.Logger())

	database := db.InitDB(cfg.DatabasePath)
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	client := movie.NewClient(movie.Options{
		BaseURL:       cfg.OMDbBaseURL,
		APIKey:        cfg.OMDbAPIKey,
		RatePerSecond: cfg.OMDbRatePerSecond,
		Timeout:       cfg.OMDbTimeout,
	})
	if cfg.OMDbAPIKey == "" {
		slog.Warn("OMDB_API_KEY is not set, users have to provide their own key")
	}

	router := newRouter(newApp(database, sessionManager, client, metrics.New()))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + cfg.OMDbTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
