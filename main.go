package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taxdash/internal/config"
	"taxdash/internal/fetchers"
	"taxdash/internal/logger"
	"taxdash/internal/models"
	"taxdash/internal/server"
	"taxdash/internal/storage"
)

const announcementsRefreshInterval = time.Hour

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.GetGlobalLogger().SetLevel(logger.ParseLogLevel(cfg.LogLevel))

	log := logger.GetGlobalLogger().WithComponent("main")
	log.Infof("starting filing operations dashboard on port %s (environment: %s)", cfg.Port, cfg.Environment)

	deploymentMode := storage.DeploymentLocal
	if cfg.GCSBucket != "" {
		deploymentMode = storage.DeploymentGCS
		log.Infof("publishing snapshots to gs://%s", cfg.GCSBucket)
	} else {
		log.Infof("publishing snapshots to %s", cfg.LocalSnapshotsDir)
	}

	srv, err := server.NewServer(ctx, cfg, deploymentMode)
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
	} else {
		log.Info("SUMMARY_URL not set; waiting for pushed payloads on /api/summary")
	}

	if cfg.AnnouncementsURL != "" {
		go func() {
			srv.RefreshAnnouncements(ctx)
			ticker := time.NewTicker(announcementsRefreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					srv.RefreshAnnouncements(ctx)
				}
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", err)
	}
	if err := srv.Close(); err != nil {
		log.Error("server close error", err)
	}

	log.Info("stopped")
}
