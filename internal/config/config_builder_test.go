// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func stubFlags(cfg *StructuredConfig) func() *StructuredConfig {
	return func() *StructuredConfig { return cfg }
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
	assert.NotNil(t, b.parseFlags)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Namespace: "plans"}},
		&StructuredConfig{Adapter: Adapter{HTTPAddress: "localhost:8080"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "plans", cfg.App.Namespace)
	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
}

// TestBuild_LastSourceWins verifies that a later non-zero field overrides an
// earlier one, while zero fields of the later source do not erase values.
func TestBuild_LastSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Namespace: "env", APIToken: "env-token"}},
		&StructuredConfig{App: App{Namespace: "file"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.App.Namespace)
	assert.Equal(t, "env-token", cfg.App.APIToken)
}

func TestBuild_ValidationError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{InlineThreshold: -1},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_NAMESPACE", "env-ns")
	t.Setenv("ADAPTER_ADDRESS", "api.local:9000")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-ns", b.configs[0].App.Namespace)
	assert.Equal(t, "api.local:9000", b.configs[0].Adapter.HTTPAddress)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("COORDINATOR_ARM_DELAY", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	b.parseFlags = stubFlags(&StructuredConfig{App: App{APIToken: "flag-token"}})

	assert.Same(t, b, b.withFlags())
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-token", b.configs[0].App.APIToken)
}

// ── withFile ──────────────────────────────────────────────────────────────────

func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithFile_AppendsJSONConfig(t *testing.T) {
	payload := StructuredFileConfig{}
	payload.App.Namespace = "json-ns"
	payload.Coordinator.InterItemDelay = Duration(time.Second)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-ns", b.configs[1].App.Namespace)
	assert.Equal(t, time.Second, b.configs[1].Coordinator.InterItemDelay)
}

func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		ConfigFilePath: "/nonexistent/config.json",
	})
	b.withFile()

	assert.Error(t, b.err)
}

func TestWithFile_SetsError_WhenMalformed(t *testing.T) {
	path := writeTempFile(t, "bad.json", "{not valid json")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	assert.Error(t, b.err)
}

func TestWithFile_UsesLastPath(t *testing.T) {
	first := writeTempFile(t, "first.json", `{"app":{"namespace":"first"}}`)
	last := writeTempFile(t, "last.json", `{"app":{"namespace":"last"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{ConfigFilePath: first},
		&StructuredConfig{ConfigFilePath: last},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last", b.configs[2].App.Namespace)
}

// ── end to end ────────────────────────────────────────────────────────────────

// TestBuilder_FileOverridesEnvAndFlags собирает конфиг из всех трёх источников.
func TestBuilder_FileOverridesEnvAndFlags(t *testing.T) {
	path := writeTempFile(t, "cfg.yaml", "app:\n  namespace: from-file\n")
	t.Setenv("APP_NAMESPACE", "from-env")
	t.Setenv("APP_API_TOKEN", "env-token")

	b := newConfigBuilder()
	b.parseFlags = stubFlags(&StructuredConfig{
		Adapter:        Adapter{HTTPAddress: "flags:1"},
		ConfigFilePath: path,
	})

	cfg, err := b.withEnv().withFlags().withFile().build()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.App.Namespace)
	assert.Equal(t, "env-token", cfg.App.APIToken)
	assert.Equal(t, "flags:1", cfg.Adapter.HTTPAddress)
}
