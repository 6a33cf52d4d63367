// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/facility-ops/internal/adapter"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/validators"
	"github.com/MKhiriev/facility-ops/models"
)

const (
	collectionDevices = "devices"
	collectionPeople  = "people"
	collectionGroups  = "groups"
)

// DeviceService is the device collection used by the UI.
type DeviceService struct {
	*MutationManager[models.Device, models.DevicePatch]

	positionDebounce time.Duration
}

func NewDeviceService(remote adapter.DeviceCollection, notifier Notifier, positionDebounce time.Duration, log *logger.Logger) *DeviceService {
	return &DeviceService{
		MutationManager:  NewMutationManager[models.Device, models.DevicePatch](collectionDevices, remote, notifier, log).WithValidator(validators.NewEntityValidator()),
		positionDebounce: positionDebounce,
	}
}

func (s *DeviceService) Update(ctx context.Context, id string, patch models.DevicePatch) (models.Device, error) {
	return s.Apply(ctx, id, patch)
}

// UpdatePosition moves device id on the floor plan. Calls during a drag are
// coalesced; only the last position is persisted.
func (s *DeviceService) UpdatePosition(ctx context.Context, id string, x, y float64) error {
	return s.ApplyDebounced(ctx, id, models.PositionPatch(x, y), s.positionDebounce)
}

func (s *DeviceService) UpdateMany(ctx context.Context, targets []UpdateTarget[models.DevicePatch]) ([]models.Device, error) {
	return s.ApplyMany(ctx, targets)
}

// MoveToZone reassigns every device of ids to zoneID.
func (s *DeviceService) MoveToZone(ctx context.Context, ids []string, zoneID string) ([]models.Device, error) {
	return s.UpdateMany(ctx, sameDevicePatch(ids, models.DevicePatch{ZoneID: &zoneID}))
}

// AssignGroup puts every device of ids into groupID. An empty groupID
// removes the devices from their group.
func (s *DeviceService) AssignGroup(ctx context.Context, ids []string, groupID string) ([]models.Device, error) {
	return s.UpdateMany(ctx, sameDevicePatch(ids, models.DevicePatch{GroupID: &groupID}))
}

func sameDevicePatch(ids []string, patch models.DevicePatch) []UpdateTarget[models.DevicePatch] {
	targets := make([]UpdateTarget[models.DevicePatch], len(ids))
	for i, id := range ids {
		targets[i] = UpdateTarget[models.DevicePatch]{ID: id, Patch: patch}
	}
	return targets
}

// PersonService is the people collection used by the UI.
type PersonService struct {
	*MutationManager[models.Person, models.PersonPatch]
}

func NewPersonService(remote adapter.PersonCollection, notifier Notifier, log *logger.Logger) *PersonService {
	return &PersonService{
		MutationManager: NewMutationManager[models.Person, models.PersonPatch](collectionPeople, remote, notifier, log).WithValidator(validators.NewEntityValidator()),
	}
}

func (s *PersonService) Update(ctx context.Context, id string, patch models.PersonPatch) (models.Person, error) {
	return s.Apply(ctx, id, patch)
}

func (s *PersonService) UpdateMany(ctx context.Context, targets []UpdateTarget[models.PersonPatch]) ([]models.Person, error) {
	return s.ApplyMany(ctx, targets)
}

// GroupService is the group collection used by the UI.
type GroupService struct {
	*MutationManager[models.Group, models.GroupPatch]

	devices *DeviceService
}

func NewGroupService(remote adapter.GroupCollection, devices *DeviceService, notifier Notifier, log *logger.Logger) *GroupService {
	return &GroupService{
		MutationManager: NewMutationManager[models.Group, models.GroupPatch](collectionGroups, remote, notifier, log).WithValidator(validators.NewEntityValidator()),
		devices:         devices,
	}
}

func (s *GroupService) Update(ctx context.Context, id string, patch models.GroupPatch) (models.Group, error) {
	return s.Apply(ctx, id, patch)
}

func (s *GroupService) UpdateMany(ctx context.Context, targets []UpdateTarget[models.GroupPatch]) ([]models.Group, error) {
	return s.ApplyMany(ctx, targets)
}

// AssignDevices moves deviceIDs into groupID through a bulk device update.
func (s *GroupService) AssignDevices(ctx context.Context, groupID string, deviceIDs []string) ([]models.Device, error) {
	return s.devices.AssignGroup(ctx, deviceIDs, groupID)
}
