// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/facility-ops/internal/adapter"
	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/validators"
	"github.com/MKhiriev/facility-ops/models"
)

// UpsertFunc performs one idempotent create-if-missing call.
type UpsertFunc func(ctx context.Context) (any, error)

type ensureRequest struct {
	key    string
	upsert UpsertFunc
	// ctx carries the logger and trace id of the first caller, detached
	// from its cancellation.
	ctx context.Context

	done   chan struct{}
	result any
	err    error
}

// EnsureCoordinator serialises ensure-exists upserts over one FIFO queue
// shared by the whole process.
//
// Concurrent calls for the same key share one request and one remote call.
// The queue is drained one request at a time with a fixed pause between two
// dispatches. An idle queue waits a short arm delay before draining so that
// a burst of submissions is processed in a single run.
type EnsureCoordinator struct {
	sites     adapter.SiteAdapter
	validator validators.Validator

	interItemDelay time.Duration
	armDelay       time.Duration

	mu      sync.Mutex
	pending map[string]*ensureRequest
	queue   []*ensureRequest
	running bool
	stopped bool

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger *logger.Logger
}

func NewEnsureCoordinator(sites adapter.SiteAdapter, cfg config.Coordinator, log *logger.Logger) *EnsureCoordinator {
	if log == nil {
		log = logger.Nop()
	}

	return &EnsureCoordinator{
		sites:          sites,
		validator:      validators.NewEntityValidator(),
		interItemDelay: cfg.InterItemDelay,
		armDelay:       cfg.ArmDelay,
		pending:        make(map[string]*ensureRequest),
		wake:           make(chan struct{}, 1),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
		logger:         log,
	}
}

// Start launches the queue processor in the background.
func (c *EnsureCoordinator) Start(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	go c.process(ctx)
	return nil
}

// Run processes the queue until ctx is cancelled or Shutdown is called.
func (c *EnsureCoordinator) Run(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	c.process(ctx)
	return nil
}

func (c *EnsureCoordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.stopped:
		return ErrCoordinatorStopped
	case c.running:
		return ErrCoordinatorRunning
	}
	c.running = true
	return nil
}

// Shutdown rejects every queued request with [ErrCoordinatorStopped] and
// waits for the dispatched one to settle.
func (c *EnsureCoordinator) Shutdown() {
	c.reject()
	c.stopOnce.Do(func() { close(c.stop) })

	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		<-c.done
	}
}

// Ensure returns the outcome of upsert for key. While a request for key is
// queued or in flight every caller receives its outcome. A cancelled ctx
// stops the wait but not the request.
func (c *EnsureCoordinator) Ensure(ctx context.Context, key string, upsert UpsertFunc) (any, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidEnsureKey)
	}
	log := logger.Ctx(ctx, c.logger)

	c.mu.Lock()
	switch {
	case c.stopped:
		c.mu.Unlock()
		return nil, ErrCoordinatorStopped
	case !c.running:
		c.mu.Unlock()
		return nil, ErrCoordinatorNotRunning
	}

	req, ok := c.pending[key]
	if !ok {
		req = &ensureRequest{
			key:    key,
			upsert: upsert,
			ctx:    context.WithoutCancel(ctx),
			done:   make(chan struct{}),
		}
		c.pending[key] = req
		c.queue = append(c.queue, req)
		queued := len(c.queue)
		c.mu.Unlock()

		select {
		case c.wake <- struct{}{}:
		default:
		}
		log.Debug().Str("func", "EnsureCoordinator.Ensure").Str("key", key).Int("queued", queued).Msg("ensure request queued")
	} else {
		c.mu.Unlock()
		log.Debug().Str("func", "EnsureCoordinator.Ensure").Str("key", key).Msg("joined pending ensure request")
	}

	select {
	case <-req.done:
		return req.result, req.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// EnsureSite makes sure the site described by desc exists on the remote.
func (c *EnsureCoordinator) EnsureSite(ctx context.Context, desc models.SiteDescriptor) (models.Site, error) {
	if desc.ID == "" {
		return models.Site{}, fmt.Errorf("%w: empty site id", ErrInvalidEnsureKey)
	}
	if err := c.validator.Validate(ctx, desc); err != nil {
		return models.Site{}, fmt.Errorf("%w: %w", adapter.ErrValidationFailure, err)
	}

	res, err := c.Ensure(ctx, "site:"+desc.ID, func(ctx context.Context) (any, error) {
		return c.sites.EnsureSite(ctx, desc)
	})
	if err != nil {
		return models.Site{}, err
	}

	site, ok := res.(models.Site)
	if !ok {
		return models.Site{}, fmt.Errorf("%w: %T", ErrUnexpectedResult, res)
	}
	return site, nil
}

func (c *EnsureCoordinator) process(ctx context.Context) {
	defer close(c.done)
	defer c.reject()

	for {
		select {
		case <-c.wake:
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}

		if !c.sleep(ctx, c.armDelay) {
			return
		}

		for {
			req := c.pop()
			if req == nil {
				break
			}
			c.dispatch(req)

			if !c.sleep(ctx, c.interItemDelay) {
				return
			}
		}
	}
}

func (c *EnsureCoordinator) pop() *ensureRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return nil
	}
	req := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	return req
}

func (c *EnsureCoordinator) dispatch(req *ensureRequest) {
	log := logger.Ctx(req.ctx, c.logger)
	started := time.Now()

	res, err := req.upsert(req.ctx)
	if err != nil {
		log.Err(err).Str("func", "EnsureCoordinator.dispatch").Str("key", req.key).Msg("ensure upsert failed")
	} else {
		log.Debug().Str("func", "EnsureCoordinator.dispatch").
			Str("key", req.key).
			Dur("took", time.Since(started)).
			Msg("ensure upsert settled")
	}

	c.settle(req, res, err)
}

func (c *EnsureCoordinator) settle(req *ensureRequest, res any, err error) {
	c.mu.Lock()
	if c.pending[req.key] == req {
		delete(c.pending, req.key)
	}
	c.mu.Unlock()

	req.result, req.err = res, err
	close(req.done)
}

// reject stops accepting requests and fails every queued one.
func (c *EnsureCoordinator) reject() {
	c.mu.Lock()
	c.stopped = true
	queued := c.queue
	c.queue = nil
	c.mu.Unlock()

	for _, req := range queued {
		c.settle(req, nil, ErrCoordinatorStopped)
	}
}

// sleep waits d and reports false when the coordinator stops meanwhile.
func (c *EnsureCoordinator) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		select {
		case <-c.stop:
			return false
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.stop:
		return false
	case <-ctx.Done():
		return false
	}
}
