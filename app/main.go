package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/matchcomb/matchcomb/app/api"
	"github.com/matchcomb/matchcomb/app/calendar"
	"github.com/matchcomb/matchcomb/app/cfg"
	"github.com/matchcomb/matchcomb/app/match"
	"github.com/matchcomb/matchcomb/app/schedule"
	"github.com/matchcomb/matchcomb/app/sources"
	"github.com/matchcomb/matchcomb/app/tasks"
)

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env file")
	}

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting MatchComb server", "version", cfg.GetVersion())

	configCache := sources.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load source configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded", "count", configCache.GetConfigCount())

	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.HTTPTimeout) * time.Second,
	}

	adapters := make(map[match.Source]sources.Adapter)
	for name, config := range configCache.GetEnabledConfigs() {
		switch match.Source(name) {
		case match.SourceGazzetta:
			adapters[match.SourceGazzetta] = sources.NewGazzetta(config, httpClient, appCfg.UserAgent)
		case match.SourceMedia24:
			adapters[match.SourceMedia24] = sources.NewMedia24(config, httpClient, appCfg.UserAgent)
		}
	}
	if len(adapters) == 0 {
		slog.Warn("No enabled sources configured", "dir", appCfg.SourcesDir)
	}

	cache := schedule.NewCache(adapters, time.Duration(appCfg.CacheTTL)*time.Second)
	engine := schedule.NewEngine(cache)

	authorizer := calendar.NewAuthorizer(appCfg.CredentialsFile, appCfg.TokenFile)

	if appCfg.Authorize {
		slog.Info("Running interactive calendar authorization")
		if _, err := authorizer.Client(context.Background(), true); err != nil {
			slog.Error("Calendar authorization failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Calendar authorization complete", "token_file", appCfg.TokenFile)
	}

	syncer := calendar.NewSyncer(authorizer, appCfg.CalendarID)

	var scheduler tasks.TaskSchedulerInterface
	if appCfg.SchedulerInterval > 0 {
		slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)
		scheduler = tasks.NewScheduler(cache, engine, syncer)
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		slog.Info("Background scheduler disabled")
	}

	handler := api.NewHandler(engine, syncer, match.Source(appCfg.PrimarySource))
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
