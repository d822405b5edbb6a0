package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/againullin/steamfolio/internal/clients/steam"
	"github.com/againullin/steamfolio/internal/config"
	"github.com/againullin/steamfolio/internal/database"
	"github.com/againullin/steamfolio/internal/modules/ledger"
	"github.com/againullin/steamfolio/internal/modules/quotes"
	"github.com/againullin/steamfolio/internal/modules/reports"
	"github.com/againullin/steamfolio/internal/scheduler"
	"github.com/againullin/steamfolio/internal/server"
	"github.com/againullin/steamfolio/internal/services"
	"github.com/againullin/steamfolio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Steam Market Portfolio service")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Wire the ledger
	repo := ledger.NewRepository(db.Conn(), log)
	engine := ledger.NewEngine(repo, log)

	// Wire the price source and its consumers
	steamClient := steam.NewClient(steam.Config{
		AppID:    cfg.SteamAppID,
		Currency: cfg.SteamCurrency,
		Timeout:  cfg.FetchTimeout,
	}, log)

	quoteService := quotes.NewService(steamClient, cfg.QuoteCacheTTL, log)
	refresher := services.NewRefresher(engine, steamClient, cfg.FetchDelay, log)

	// Optional background refresh
	sched := scheduler.New(log)
	if cfg.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.RefreshSchedule, services.NewRefreshJob(refresher)); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("Failed to register refresh job")
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DevMode:   cfg.DevMode,
		Ledger:    ledger.NewHandler(engine, log),
		Quotes:    quotes.NewHandler(quoteService, log),
		Reports:   reports.NewHandler(engine, log),
		Refresher: refresher,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
