// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/facility-ops/internal/adapter"
	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/store"
)

// ClientServices groups every service of the client. The ensure
// coordinator is created once here and shared by all callers.
type ClientServices struct {
	Devices    *DeviceService
	People     *PersonService
	Groups     *GroupService
	FloorPlans *FloorPlanService

	Coordinator *EnsureCoordinator
	RefetchJob  *RefetchJob
}

func NewClientServices(cfg *config.ClientConfig, serverAdapter *adapter.ServerAdapter, storages *store.ClientStorages, notifier Notifier, log *logger.Logger) *ClientServices {
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	devices := NewDeviceService(serverAdapter.Devices, notifier, cfg.Mutations.PositionDebounce, log)
	people := NewPersonService(serverAdapter.People, notifier, log)
	groups := NewGroupService(serverAdapter.Groups, devices, notifier, log)

	return &ClientServices{
		Devices:     devices,
		People:      people,
		Groups:      groups,
		FloorPlans:  NewFloorPlanService(storages.Blobs, storages.Vectors, log),
		Coordinator: NewEnsureCoordinator(serverAdapter.Sites, cfg.Coordinator, log),
		RefetchJob:  NewRefetchJob([]Invalidator{devices, people, groups}, cfg.Workers.RefetchInterval, log),
	}
}

// SetScope switches every collection to the site scope.
func (s *ClientServices) SetScope(scope string) {
	s.Devices.SetScope(scope)
	s.People.SetScope(scope)
	s.Groups.SetScope(scope)
}

// LoadAll fetches every collection.
func (s *ClientServices) LoadAll(ctx context.Context) error {
	return errors.Join(
		s.Devices.Load(ctx),
		s.People.Load(ctx),
		s.Groups.Load(ctx),
	)
}

// Flush sends every pending debounced write.
func (s *ClientServices) Flush() {
	s.Devices.Flush()
	s.People.Flush()
	s.Groups.Flush()
}

// Close stops the coordinator and the collections.
func (s *ClientServices) Close() {
	s.Coordinator.Shutdown()
	s.Devices.Close()
	s.People.Close()
	s.Groups.Close()
}
