// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/utils"
	"github.com/MKhiriev/facility-ops/models"
	"github.com/go-resty/resty/v2"
)

const (
	resourceDevices = "devices"
	resourcePeople  = "people"
	resourceGroups  = "groups"

	ensureSitePath = "/api/sites/ensure"
)

// ServerAdapter bundles the remote collections and the site upsert that share
// one HTTP transport and bearer token.
type ServerAdapter struct {
	Devices DeviceCollection
	People  PersonCollection
	Groups  GroupCollection
	Sites   SiteAdapter

	transport *httpTransport
}

// SetToken replaces the bearer token attached to every subsequent request.
func (a *ServerAdapter) SetToken(token string) {
	a.transport.setToken(token)
}

// Token returns the bearer token currently in use, or an empty string.
func (a *ServerAdapter) Token() string {
	return a.transport.getToken()
}

type httpTransport struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of every
// remote contract. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the request timeout. A non-empty
// appCfg.APIToken is sent as a bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.Adapter, appCfg config.App, log *logger.Logger) (*ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	t := &httpTransport{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: log,
	}
	t.setToken(appCfg.APIToken)

	return &ServerAdapter{
		Devices:   &httpCollection[models.Device, models.DevicePatch]{t: t, resource: resourceDevices},
		People:    &httpCollection[models.Person, models.PersonPatch]{t: t, resource: resourcePeople},
		Groups:    &httpCollection[models.Group, models.GroupPatch]{t: t, resource: resourceGroups},
		Sites:     &httpSiteAdapter{t: t},
		transport: t,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (t *httpTransport) setToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = strings.TrimSpace(token)
}

func (t *httpTransport) getToken() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *httpTransport) request(ctx context.Context) *resty.Request {
	req := t.client.R().SetContext(ctx)
	if token := t.getToken(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Trace-ID", traceID)
	}
	return req
}

// do sends req and decodes a 2xx body into out (when out is non-nil).
// Transport errors are wrapped with ErrNetworkFailure.
func (t *httpTransport) do(req *resty.Request, method, path string, out any, op string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		t.logger.Err(err).Str("func", op).Str("path", path).Msg("remote request failed")
		return fmt.Errorf("%s request: %w: %w", op, ErrNetworkFailure, err)
	}
	if err = mapHTTPError(resp); err != nil {
		t.logger.Err(err).Str("func", op).Str("path", path).Int("status", resp.StatusCode()).Msg("remote returned an error")
		return err
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrDecodeResponse, err)
	}
	return nil
}

// httpCollection implements [Collection] for the resource under /api/{resource}.
type httpCollection[T models.Record[T], P models.Patch[T]] struct {
	t        *httpTransport
	resource string
}

func (c *httpCollection[T, P]) path(parts ...string) string {
	p := "/api/" + c.resource
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// List sends GET /api/{resource}?scope=<scope>.
func (c *httpCollection[T, P]) List(ctx context.Context, scope string) ([]T, error) {
	var items []T
	req := c.t.request(ctx).SetQueryParam("scope", scope)
	if err := c.t.do(req, resty.MethodGet, c.path(), &items, "httpCollection.List"); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create sends POST /api/{resource}.
func (c *httpCollection[T, P]) Create(ctx context.Context, item T) (T, error) {
	var created T
	req := c.t.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item)
	if err := c.t.do(req, resty.MethodPost, c.path(), &created, "httpCollection.Create"); err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// Update sends PATCH /api/{resource}/{id}.
func (c *httpCollection[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var updated T
	req := c.t.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch)
	if err := c.t.do(req, resty.MethodPatch, c.path(id), &updated, "httpCollection.Update"); err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete sends DELETE /api/{resource}/{id}.
func (c *httpCollection[T, P]) Delete(ctx context.Context, id string) (T, error) {
	var deleted T
	if err := c.t.do(c.t.request(ctx), resty.MethodDelete, c.path(id), &deleted, "httpCollection.Delete"); err != nil {
		var zero T
		return zero, err
	}
	return deleted, nil
}

type deleteManyRequest struct {
	IDs []string `json:"ids"`
}

// DeleteMany sends POST /api/{resource}/delete-many.
func (c *httpCollection[T, P]) DeleteMany(ctx context.Context, ids []string) error {
	req := c.t.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(deleteManyRequest{IDs: ids})
	return c.t.do(req, resty.MethodPost, c.path("delete-many"), nil, "httpCollection.DeleteMany")
}

type httpSiteAdapter struct {
	t *httpTransport
}

// EnsureSite sends PUT /api/sites/ensure.
func (s *httpSiteAdapter) EnsureSite(ctx context.Context, desc models.SiteDescriptor) (models.Site, error) {
	var site models.Site
	req := s.t.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(desc)
	if err := s.t.do(req, resty.MethodPut, ensureSitePath, &site, "httpSiteAdapter.EnsureSite"); err != nil {
		return models.Site{}, err
	}
	return site, nil
}
