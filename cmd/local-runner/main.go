// Local development runner: loads .env, forces local snapshot storage and
// opens the dashboard in the default browser.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/browser"
	"github.com/joho/godotenv"

	"taxdash/internal/config"
	"taxdash/internal/fetchers"
	"taxdash/internal/logger"
	"taxdash/internal/models"
	"taxdash/internal/server"
	"taxdash/internal/storage"
)

func main() {
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.GetGlobalLogger().SetLevel(logger.ParseLogLevel(cfg.LogLevel))

	log := logger.GetGlobalLogger().WithComponent("local-runner")

	srv, err := server.NewServer(ctx, cfg, storage.DeploymentLocal)
	if err != nil {
		logger.Fatal("Failed to create server", err)
	}

	if err := srv.Mount(); err != nil {
		logger.Fatal("Failed to mount dashboard", err)
	}

	if cfg.SummaryURL != "" {
		poller := fetchers.NewSummaryFetcher(cfg.RequestTimeout)
		go poller.Poll(ctx, cfg.SummaryURL, cfg.PollInterval, func(payload *models.SummaryPayload) {
			srv.ApplySummary(ctx, payload)
		})
	}
	if cfg.AnnouncementsURL != "" {
		go srv.RefreshAnnouncements(ctx)
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.SetupRoutes(),
	}

	go func() {
		log.Infof("dashboard on http://localhost:%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	url := fmt.Sprintf("http://localhost:%s/", cfg.Port)
	time.Sleep(300 * time.Millisecond)
	if err := browser.OpenURL(url); err != nil {
		log.Warnf("could not open browser: %v (open %s manually)", err, url)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	srv.Close()
}
