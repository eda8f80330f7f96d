package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BuildPulse/internal/aggregator"
	"BuildPulse/internal/api"
	"BuildPulse/internal/collector"
	"BuildPulse/internal/config"
	"BuildPulse/internal/scheduler"
	"BuildPulse/internal/settings"

	"github.com/gin-gonic/gin"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] BuildPulse starting...")

	// Load bootstrap config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init settings store
	var store settings.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := settings.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite settings store failed, using memory store: %v", err)
			store = settings.NewMemoryStore()
		} else {
			store = ss
		}
	} else {
		store = settings.NewMemoryStore()
	}
	defer store.Close()

	// Init adapters and aggregator
	agg := aggregator.New(collector.NewHTTPFeedFetcher(), collector.NewHTTPIndicatorFetcher())

	// Init coordinator
	coord := scheduler.New(agg, store)
	if err := coord.Start(); err != nil {
		log.Fatalf("[FATAL] start coordinator: %v", err)
	}
	defer coord.Stop()

	// HTTP API
	r := gin.Default()
	api.NewServer(coord).RegisterRoutes(r)

	srv := &http.Server{Addr: cfg.Server.Listen, Handler: r}
	go func() {
		log.Printf("[INFO] api server listening on %s", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] api server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] api server shutdown: %v", err)
	}
	log.Println("[INFO] BuildPulse stopped")
}
