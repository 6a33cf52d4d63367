// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/service"
	"github.com/MKhiriev/facility-ops/internal/store"
	"github.com/MKhiriev/facility-ops/internal/workers"
	"github.com/MKhiriev/facility-ops/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	workers  *workers.Workers
	site     config.Site

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, storages *store.ClientStorages, site config.Site, log *logger.Logger) (*App, error) {
	if services == nil || storages == nil {
		return nil, errors.New("client app: services and storages are required")
	}
	if log == nil {
		log = logger.Nop()
	}

	return &App{
		services: services,
		storages: storages,
		workers:  workers.NewWorkers(log, services.RefetchJob),
		site:     site,
		logger:   log,
	}, nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	if err := a.services.Coordinator.Start(ctx); err != nil {
		return fmt.Errorf("start ensure coordinator: %w", err)
	}

	if err := a.bootstrap(ctx); err != nil {
		// the refetch job retries the load
		a.logger.Warn().Err(err).Str("func", "App.run").Msg("bootstrap incomplete")
	}

	a.logger.Info().Msg("client started")
	runErr := a.workers.Run(ctx)

	a.shutdown()
	return runErr
}

func (a *App) bootstrap(ctx context.Context) error {
	if a.site.ID != "" {
		name := a.site.Name
		if name == "" {
			name = a.site.ID
		}
		site, err := a.services.Coordinator.EnsureSite(ctx, models.SiteDescriptor{
			ID:      a.site.ID,
			Name:    name,
			Address: a.site.Address,
		})
		if err != nil {
			return fmt.Errorf("ensure site %s: %w", a.site.ID, err)
		}
		a.services.SetScope(site.ID)
		a.logger.Info().Str("func", "App.bootstrap").Str("site_id", site.ID).Msg("site ensured")
	}

	return a.services.LoadAll(ctx)
}

// shutdown persists the last debounced writes before anything is closed.
func (a *App) shutdown() {
	a.logger.Info().Msg("shutting down client...")

	a.services.Flush()
	a.services.Close()

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.shutdown").Msg("failed to close storages")
	}
	a.logger.Info().Msg("client stopped")
}
