// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to fields left empty by every source.
const (
	DefaultNamespace        = "floorplan"
	DefaultInlineThreshold  = 100 * 1024
	DefaultSmallQuotaBytes  = 5 * 1024 * 1024
	DefaultLargeDriver      = "sqlite3"
	DefaultLargeDSN         = "facility-ops.db"
	DefaultRequestTimeout   = 10 * time.Second
	DefaultInterItemDelay   = 250 * time.Millisecond
	DefaultArmDelay         = 20 * time.Millisecond
	DefaultPositionDebounce = 300 * time.Millisecond
	DefaultRefetchInterval  = time.Minute
)

// ClientConfig is the fully resolved client configuration. It is the
// [StructuredConfig] with defaults applied and validated.
type ClientConfig struct {
	App         App
	Adapter     Adapter
	Storage     Storage
	Coordinator Coordinator
	Mutations   Mutations
	Workers     Workers
	Site        Site
}

// GetClientConfig loads the merged configuration via [GetStructuredConfig],
// fills in defaults and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig copies cfg into a ClientConfig and applies defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App:         cfg.App,
		Adapter:     cfg.Adapter,
		Storage:     cfg.Storage,
		Coordinator: cfg.Coordinator,
		Mutations:   cfg.Mutations,
		Workers:     cfg.Workers,
		Site:        cfg.Site,
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.Namespace == "" {
		cfg.App.Namespace = DefaultNamespace
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.InlineThreshold == 0 {
		cfg.Storage.InlineThreshold = DefaultInlineThreshold
	}
	if cfg.Storage.Small.QuotaBytes == 0 {
		cfg.Storage.Small.QuotaBytes = DefaultSmallQuotaBytes
	}
	if cfg.Storage.Large.Driver == "" {
		cfg.Storage.Large.Driver = DefaultLargeDriver
	}
	if cfg.Storage.Large.DSN == "" {
		cfg.Storage.Large.DSN = DefaultLargeDSN
	}
	if cfg.Coordinator.InterItemDelay == 0 {
		cfg.Coordinator.InterItemDelay = DefaultInterItemDelay
	}
	if cfg.Coordinator.ArmDelay == 0 {
		cfg.Coordinator.ArmDelay = DefaultArmDelay
	}
	if cfg.Mutations.PositionDebounce == 0 {
		cfg.Mutations.PositionDebounce = DefaultPositionDebounce
	}
	if cfg.Workers.RefetchInterval == 0 {
		cfg.Workers.RefetchInterval = DefaultRefetchInterval
	}
}
