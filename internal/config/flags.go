// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a remote API address
//	-request-timeout remote request timeout (e.g., "10s")
//	-c/-config JSON or YAML file path with configs
//	-namespace small-tier key namespace
//	-token API bearer token
//	-log log file path
//	-small-dir badger directory of the small tier
//	-small-quota small tier quota in bytes
//	-d large tier database path
//	-driver large tier sql driver
//	-threshold inline payload threshold in bytes
//	-ensure-delay delay between two ensure upserts
//	-position-debounce debounce of device position writes
//	-refetch-interval collection refetch interval
//	-site-id/-site-name bootstrap site
func ParseFlags() *StructuredConfig {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	cfg, err := parseFlagSet(fs, os.Args[1:])
	if err != nil {
		return &StructuredConfig{}
	}
	return cfg
}

func parseFlagSet(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		address          string
		requestTimeout   time.Duration
		configPath       string
		namespace        string
		token            string
		logFile          string
		smallDir         string
		smallQuota       int64
		largeDSN         string
		largeDriver      string
		threshold        int64
		ensureDelay      time.Duration
		armDelay         time.Duration
		positionDebounce time.Duration
		refetchInterval  time.Duration
		siteID           string
		siteName         string
	)

	fs.StringVar(&address, "a", "", "Remote API address")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&configPath, "c", "", "Config file path (json or yaml)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&namespace, "namespace", "", "Small tier key namespace")
	fs.StringVar(&token, "token", "", "API bearer token")
	fs.StringVar(&logFile, "log", "", "Log file path")
	fs.StringVar(&smallDir, "small-dir", "", "Small tier badger directory")
	fs.Int64Var(&smallQuota, "small-quota", 0, "Small tier quota in bytes")
	fs.StringVar(&largeDSN, "d", "", "Large tier database path")
	fs.StringVar(&largeDriver, "driver", "", "Large tier sql driver (sqlite3|sqlite)")
	fs.Int64Var(&threshold, "threshold", 0, "Inline payload threshold in bytes")
	fs.DurationVar(&ensureDelay, "ensure-delay", 0, "Delay between two ensure upserts")
	fs.DurationVar(&armDelay, "ensure-arm-delay", 0, "Debounce of an idle ensure queue")
	fs.DurationVar(&positionDebounce, "position-debounce", 0, "Debounce of device position writes")
	fs.DurationVar(&refetchInterval, "refetch-interval", 0, "Collection refetch interval")
	fs.StringVar(&siteID, "site-id", "", "Bootstrap site id")
	fs.StringVar(&siteName, "site-name", "", "Bootstrap site name")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Namespace: namespace,
			APIToken:  token,
			LogFile:   logFile,
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Small: SmallTier{
				Dir:        smallDir,
				QuotaBytes: smallQuota,
			},
			Large: LargeTier{
				DSN:    largeDSN,
				Driver: largeDriver,
			},
			InlineThreshold: threshold,
		},
		Coordinator: Coordinator{
			InterItemDelay: ensureDelay,
			ArmDelay:       armDelay,
		},
		Mutations: Mutations{PositionDebounce: positionDebounce},
		Workers:   Workers{RefetchInterval: refetchInterval},
		Site: Site{
			ID:   siteID,
			Name: siteName,
		},
		ConfigFilePath: configPath,
	}, nil
}
