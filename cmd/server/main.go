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

	"go-jobpilot-scraper/internal/api"
	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/scraper"
	"go-jobpilot-scraper/internal/scraper/glints"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	launcher := browser.NewLauncher(cfg.Browser)
	runner := scraper.NewRunner(launcher, glints.NewGlintsScraper(cfg), cfg.Timeouts, cfg.Retry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Pipeline)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
}
