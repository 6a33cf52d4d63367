// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/facility-ops/internal/adapter"
	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/mock"
	"github.com/MKhiriev/facility-ops/models"
)

func TestClientServices_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	devices := mock.NewMockDeviceCollection(ctrl)
	people := mock.NewMockPersonCollection(ctrl)
	groups := mock.NewMockGroupCollection(ctrl)
	sites := mock.NewMockSiteAdapter(ctrl)

	server := &adapter.ServerAdapter{Devices: devices, People: people, Groups: groups, Sites: sites}
	cfg := &config.ClientConfig{
		Coordinator: config.Coordinator{InterItemDelay: time.Millisecond, ArmDelay: time.Millisecond},
		Mutations:   config.Mutations{PositionDebounce: time.Hour},
		Workers:     config.Workers{RefetchInterval: time.Hour},
	}

	svcs := NewClientServices(cfg, server, newTestStorages(t), nil, logger.Nop())
	ctx := context.Background()
	require.NoError(t, svcs.Coordinator.Start(ctx))

	sites.EXPECT().EnsureSite(gomock.Any(), models.SiteDescriptor{ID: "hq", Name: "HQ"}).Return(models.Site{ID: "hq", Name: "HQ"}, nil)
	site, err := svcs.Coordinator.EnsureSite(ctx, models.SiteDescriptor{ID: "hq", Name: "HQ"})
	require.NoError(t, err)

	svcs.SetScope(site.ID)
	devices.EXPECT().List(gomock.Any(), "hq").Return([]models.Device{{ID: "d1", SiteID: "hq"}}, nil)
	people.EXPECT().List(gomock.Any(), "hq").Return(nil, nil)
	groups.EXPECT().List(gomock.Any(), "hq").Return(nil, nil)
	require.NoError(t, svcs.LoadAll(ctx))
	assert.Len(t, svcs.Devices.List(), 1)

	// the last drag position is persisted on flush
	devices.EXPECT().Update(gomock.Any(), "d1", models.PositionPatch(5, 6)).Return(models.Device{ID: "d1", SiteID: "hq", X: 5, Y: 6}, nil)
	require.NoError(t, svcs.Devices.UpdatePosition(ctx, "d1", 5, 6))
	svcs.Flush()

	svcs.Close()
	_, err = svcs.Coordinator.EnsureSite(ctx, models.SiteDescriptor{ID: "hq"})
	assert.ErrorIs(t, err, ErrCoordinatorStopped)
}
