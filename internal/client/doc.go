// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless client application runtime.
//
// It wires client services, storages and background workers into a single
// process lifecycle: bootstrap the configured site, load the collections,
// serve until a stop signal, then persist pending writes and shut down.
package client
