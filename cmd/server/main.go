package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/gameshelf/internal/config"
	"github.com/cesargomez89/gameshelf/internal/constants"
	httpapp "github.com/cesargomez89/gameshelf/internal/http"
	"github.com/cesargomez89/gameshelf/internal/logger"
	"github.com/cesargomez89/gameshelf/internal/metadata"
	"github.com/cesargomez89/gameshelf/internal/resolver"
	"github.com/cesargomez89/gameshelf/internal/retro"
	"github.com/cesargomez89/gameshelf/internal/sources"
	"github.com/cesargomez89/gameshelf/internal/store"
	"github.com/cesargomez89/gameshelf/internal/syncer"
	"github.com/cesargomez89/gameshelf/internal/worker"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Metadata search, cached in sqlite so repeat titles skip the network.
	var search metadata.SearchProvider
	if cfg.MetadataURL != "" {
		search = metadata.NewCachedProvider(
			metadata.NewClient(cfg.MetadataURL, cfg.MetadataAPIKey),
			db, constants.MetadataCacheTTL)
	}

	// Retro catalog lists change rarely; cache them for days.
	var catalog retro.CatalogProvider
	if cfg.RetroURL != "" {
		catalog = retro.NewCachedProvider(
			retro.NewClient(cfg.RetroURL, cfg.RetroAPIKey),
			db, constants.RetroCatalogCacheTTL)
	}

	res := resolver.New(db, resolver.Config{
		Search:  search,
		Catalog: catalog,
		Logger:  appLogger,
	})

	s := syncer.New(db, res, appLogger)
	w := worker.New(db, s, sources.FromConfig(cfg), appLogger)
	w.Start()
	defer w.Stop()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := httpapp.NewHandler(db, res, appLogger)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
