// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the merged [StructuredConfig] before defaults are applied.
// Only values that are wrong regardless of defaults are rejected here.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.InlineThreshold < 0 || cfg.Storage.Small.QuotaBytes < 0 {
		return ErrInvalidStorageConfigs
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Coordinator.InterItemDelay < 0 || cfg.Coordinator.ArmDelay < 0 {
		return ErrInvalidCoordinatorConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Storage.Large.Driver {
	case "sqlite3", "sqlite":
	default:
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Large.DSN == "" || cfg.Storage.InlineThreshold <= 0 || cfg.Storage.Small.QuotaBytes <= 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.RefetchInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.Namespace == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Site.ID == "" && cfg.Site.Name != "" {
		return ErrInvalidSiteConfigs
	}

	return nil
}
