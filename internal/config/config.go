// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// facility-ops client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the storage namespace
	// and the API token.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote API address and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for both client-side storage tiers.
	Storage Storage `envPrefix:"STORAGE_"`

	// Coordinator holds the throttling settings of the ensure-exists queue.
	Coordinator Coordinator `envPrefix:"COORDINATOR_"`

	// Mutations holds debounce settings for high-frequency writes.
	Mutations Mutations `envPrefix:"MUTATIONS_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Site describes the site the client bootstraps on start.
	Site Site `envPrefix:"SITE_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. When non-empty, the file is parsed and merged on top of the
	// values already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Namespace prefixes small-tier keys ("<namespace>_<scopeId>").
	// Env: APP_NAMESPACE
	Namespace string `env:"NAMESPACE"`

	// APIToken is the bearer token attached to every remote API request.
	// Env: APP_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// LogFile is the client log file path. Empty means next to the binary.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds configuration of the remote API client.
type Adapter struct {
	// HTTPAddress is the base address of the remote API
	// (e.g. "http://localhost:8080" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the transport timeout of a single remote call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of the two client storage tiers.
type Storage struct {
	// Small holds the low-capacity key-value tier settings.
	Small SmallTier `envPrefix:"SMALL_"`

	// Large holds the high-capacity SQL tier settings.
	Large LargeTier `envPrefix:"LARGE_"`

	// InlineThreshold is the payload size in bytes from which payloads are
	// stored in the large tier.
	// Env: STORAGE_INLINE_THRESHOLD
	InlineThreshold int64 `env:"INLINE_THRESHOLD"`
}

// SmallTier holds settings of the badger-backed small tier.
type SmallTier struct {
	// Dir is the badger data directory. Empty selects in-memory mode.
	// Env: STORAGE_SMALL_DIR
	Dir string `env:"DIR"`

	// QuotaBytes caps the total size of values in the small tier.
	// Env: STORAGE_SMALL_QUOTA_BYTES
	QuotaBytes int64 `env:"QUOTA_BYTES"`
}

// LargeTier holds settings of the sqlite-backed large tier.
type LargeTier struct {
	// DSN is the sqlite database file path.
	// Env: STORAGE_LARGE_DSN
	DSN string `env:"DSN"`

	// Driver is the database/sql driver name: "sqlite3" (cgo) or "sqlite"
	// (pure Go).
	// Env: STORAGE_LARGE_DRIVER
	Driver string `env:"DRIVER"`
}

// Coordinator holds the ensure-exists queue settings.
type Coordinator struct {
	// InterItemDelay is the pause between two consecutive upserts.
	// Env: COORDINATOR_INTER_ITEM_DELAY
	InterItemDelay time.Duration `env:"INTER_ITEM_DELAY"`

	// ArmDelay is the debounce applied when an idle queue receives work.
	// Env: COORDINATOR_ARM_DELAY
	ArmDelay time.Duration `env:"ARM_DELAY"`
}

// Mutations holds debounce settings of optimistic mutations.
type Mutations struct {
	// PositionDebounce is the quiet period before a dragged device position
	// is persisted.
	// Env: MUTATIONS_POSITION_DEBOUNCE
	PositionDebounce time.Duration `env:"POSITION_DEBOUNCE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefetchInterval defines how often every collection is refetched.
	// Env: WORKERS_REFETCH_INTERVAL
	RefetchInterval time.Duration `env:"REFETCH_INTERVAL"`
}

// Site is the bootstrap site ensured on client start.
type Site struct {
	// Env: SITE_ID
	ID string `env:"ID"`
	// Env: SITE_NAME
	Name string `env:"NAME"`
	// Env: SITE_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Config file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withFile().
		build()
}
