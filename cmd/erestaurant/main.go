package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/erestaurant/internal/config"
	"github.com/deppfellow/erestaurant/internal/handler"
	"github.com/deppfellow/erestaurant/internal/logger"
	"github.com/deppfellow/erestaurant/internal/repository"
	"github.com/deppfellow/erestaurant/internal/router"
	"github.com/deppfellow/erestaurant/internal/server"
	"github.com/deppfellow/erestaurant/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start New Relic: %v\n", err)
		os.Exit(1)
	}
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories()
	services := service.NewServices(srv, repos)
	log.Info().
		Bool("strict_occupancy", cfg.Seating.StrictOccupancy).
		Msg("data layer ready")

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}

	log.Info().Msg("server exited")
}
