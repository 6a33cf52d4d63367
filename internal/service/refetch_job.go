// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/facility-ops/internal/logger"
)

const defaultRefetchInterval = time.Minute

// Invalidator is a collection that can be refetched in full.
type Invalidator interface {
	Name() string
	Invalidate(ctx context.Context) error
}

// RefetchJob invalidates every collection on a ticker so that changes made
// by other clients show up without a user action.
type RefetchJob struct {
	targets  []Invalidator
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewRefetchJob creates a job for targets. The job is idle until Start or
// Run is called. A non-positive interval defaults to one minute.
func NewRefetchJob(targets []Invalidator, interval time.Duration, log *logger.Logger) *RefetchJob {
	if interval <= 0 {
		interval = defaultRefetchInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RefetchJob{targets: targets, interval: interval, logger: log}
}

// Start stops any previously running job, then refetches every interval in
// a background goroutine until ctx is cancelled or Stop is called.
func (j *RefetchJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.refetch(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *RefetchJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run starts the job and blocks until ctx is cancelled.
func (j *RefetchJob) Run(ctx context.Context) error {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
	return nil
}

func (j *RefetchJob) refetch(ctx context.Context) {
	for _, target := range j.targets {
		if err := target.Invalidate(ctx); err != nil && ctx.Err() == nil {
			logger.Ctx(ctx, j.logger).Warn().Err(err).
				Str("func", "RefetchJob.refetch").
				Str("collection", target.Name()).
				Msg("periodic refetch failed")
		}
	}
}
