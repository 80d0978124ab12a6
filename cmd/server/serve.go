// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/habitline/internal/api"
	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/mediastore"
	"github.com/tomtom215/habitline/internal/supervisor"
	"github.com/tomtom215/habitline/internal/supervisor/services"
	"github.com/tomtom215/habitline/internal/tracker"
)

// loadConfig loads configuration and reconfigures the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	return cfg, nil
}

//nolint:gocyclo // sequential startup
func runServe(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("media_in_memory", cfg.Media.InMemory).
		Msg("Starting Habitline")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeWithLog(db, "database")

	media, err := mediastore.Open(&cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to open media store: %w", err)
	}
	defer closeWithLog(media, "media store")

	bus := eventprocessor.NewBus(eventprocessor.BusConfig{BufferSize: cfg.Events.BufferSize})
	defer closeWithLog(bus, "event bus")

	breaker := eventprocessor.NewCircuitBreaker(eventprocessor.BreakerConfigFrom(&cfg.Events))
	publisher := eventprocessor.NewPublisher(bus, cfg.Events.Topic, breaker)

	consumer := eventprocessor.NewActivityConsumer(bus, db, eventprocessor.ConsumerConfig{
		Topic:     cfg.Events.Topic,
		Retention: cfg.Events.ActivityRetention,
	})

	svc := tracker.New(db, media,
		tracker.WithEvents(publisher),
		tracker.WithPageSizes(cfg.API.DefaultPageSize, cfg.API.MaxPageSize),
	)

	handler := api.NewHandler(svc, cfg, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewMediaGCService(media, cfg.Media.GCInterval))
	tree.AddMessagingService(consumer)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("addr", server.Addr).
		Str("api_base", cfg.API.BasePath()).
		Msg("Supervisor tree starting")

	serveErr := waitForTree(ctx, tree.ServeBackground(ctx))
	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}

	if err := publisher.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing event publisher")
	}

	if serveErr != nil {
		return serveErr
	}
	logging.Info().Msg("Habitline stopped")
	return nil
}

// waitForTree blocks until a shutdown signal or until the tree exits on its
// own. An early exit is always an error, even if the tree reported none.
func waitForTree(ctx context.Context, errCh <-chan error) error {
	var err error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, stopping services")
		err = <-errCh
	case err = <-errCh:
	}

	if ctx.Err() != nil {
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervisor tree stopped: %w", err)
		}
		return nil
	}
	if err == nil {
		err = errors.New("exited before shutdown was requested")
	}
	logging.Error().Err(err).Msg("Supervisor tree exited unexpectedly")
	return fmt.Errorf("supervisor tree stopped: %w", err)
}

// closeWithLog closes a resource and logs a failure.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}
