// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/facility-ops/internal/adapter"
	"github.com/MKhiriev/facility-ops/internal/client"
	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/service"
	"github.com/MKhiriev/facility-ops/internal/store"
	"github.com/MKhiriev/facility-ops/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("facility-ops-client").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewClientLogger("facility-ops-client", cfg.App.LogFile)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, cfg.App.Namespace, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(cfg, serverAdapter, storages, service.NewLogNotifier(log), log)

	app, err := client.NewApp(services, storages, cfg.Site, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", orNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
