// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk shape of the config file. The same
// struct is decoded from JSON and YAML.
type StructuredFileConfig struct {
	App struct {
		Namespace string `json:"namespace" yaml:"namespace"`
		APIToken  string `json:"api_token" yaml:"api_token"`
		LogFile   string `json:"log_file" yaml:"log_file"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Storage struct {
		Small struct {
			Dir        string `json:"dir" yaml:"dir"`
			QuotaBytes int64  `json:"quota_bytes" yaml:"quota_bytes"`
		} `json:"small,omitempty" yaml:"small,omitempty"`

		Large struct {
			DSN    string `json:"dsn" yaml:"dsn"`
			Driver string `json:"driver" yaml:"driver"`
		} `json:"large,omitempty" yaml:"large,omitempty"`

		InlineThreshold int64 `json:"inline_threshold" yaml:"inline_threshold"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Coordinator struct {
		InterItemDelay Duration `json:"inter_item_delay" yaml:"inter_item_delay"`
		ArmDelay       Duration `json:"arm_delay" yaml:"arm_delay"`
	} `json:"coordinator,omitempty" yaml:"coordinator,omitempty"`

	Mutations struct {
		PositionDebounce Duration `json:"position_debounce" yaml:"position_debounce"`
	} `json:"mutations,omitempty" yaml:"mutations,omitempty"`

	Workers struct {
		RefetchInterval Duration `json:"refetch_interval" yaml:"refetch_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`

	Site struct {
		ID      string `json:"id" yaml:"id"`
		Name    string `json:"name" yaml:"name"`
		Address string `json:"address" yaml:"address"`
	} `json:"site,omitempty" yaml:"site,omitempty"`
}

// parseFile decodes the config file at path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Namespace: f.App.Namespace,
			APIToken:  f.App.APIToken,
			LogFile:   f.App.LogFile,
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
		},
		Storage: Storage{
			Small: SmallTier{
				Dir:        f.Storage.Small.Dir,
				QuotaBytes: f.Storage.Small.QuotaBytes,
			},
			Large: LargeTier{
				DSN:    f.Storage.Large.DSN,
				Driver: f.Storage.Large.Driver,
			},
			InlineThreshold: f.Storage.InlineThreshold,
		},
		Coordinator: Coordinator{
			InterItemDelay: time.Duration(f.Coordinator.InterItemDelay),
			ArmDelay:       time.Duration(f.Coordinator.ArmDelay),
		},
		Mutations: Mutations{
			PositionDebounce: time.Duration(f.Mutations.PositionDebounce),
		},
		Workers: Workers{
			RefetchInterval: time.Duration(f.Workers.RefetchInterval),
		},
		Site: Site{
			ID:      f.Site.ID,
			Name:    f.Site.Name,
			Address: f.Site.Address,
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	tmp, err := time.ParseDuration(raw)
	if err != nil {
		var ns int64
		if nerr := node.Decode(&ns); nerr != nil {
			return err
		}
		tmp = time.Duration(ns)
	}
	*d = Duration(tmp)
	return nil
}
