// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/facility-ops/internal/adapter"
	"github.com/MKhiriev/facility-ops/internal/cache"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/validators"
	"github.com/MKhiriev/facility-ops/models"
)

// MutationState is the lifecycle state of one mutation.
type MutationState int

const (
	// MutationIssued: the optimistic value is visible, the remote call is
	// scheduled or outstanding.
	MutationIssued MutationState = iota
	// MutationConfirmed: the cache holds the server value.
	MutationConfirmed
	// MutationFailed: the collection was invalidated and refetched.
	MutationFailed
)

func (s MutationState) String() string {
	switch s {
	case MutationIssued:
		return "issued"
	case MutationConfirmed:
		return "confirmed"
	case MutationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MutationKind names the remote operation behind a mutation.
type MutationKind string

const (
	MutationCreate          MutationKind = "create"
	MutationUpdate          MutationKind = "update"
	MutationDebouncedUpdate MutationKind = "debounced_update"
	MutationBulkUpdate      MutationKind = "bulk_update"
	MutationDelete          MutationKind = "delete"
	MutationBulkDelete      MutationKind = "bulk_delete"
)

// MutationEvent reports a state transition of one mutation.
type MutationEvent struct {
	Seq        uint64
	Collection string
	Kind       MutationKind
	EntityIDs  []string
	State      MutationState
	Err        error
}

// MutationObserver receives every [MutationEvent] of a manager.
type MutationObserver func(MutationEvent)

// UpdateTarget is one entry of a bulk update.
type UpdateTarget[P any] struct {
	ID    string
	Patch P
}

// MutationManager applies optimistic mutations of one entity collection.
//
// Every mutation is merged into the cache first, then sent to the remote.
// A success reconciles the cache with the server value. A failure notifies
// the user and invalidates the collection: the cache is replaced by a fresh
// full list, patches are never reverted by hand.
type MutationManager[T models.Record[T], P models.Patch[T]] struct {
	collection string
	scope      atomic.Value

	remote    adapter.Collection[T, P]
	cache     *cache.Cache[T]
	debouncer *Debouncer
	notifier  Notifier
	validator validators.Validator

	seq     atomic.Uint64
	loading atomic.Int32
	// refetchMu serialises full refetches so that an older list never
	// overwrites a newer one.
	refetchMu sync.Mutex
	// inflight counts dispatched remote calls.
	inflight sync.WaitGroup

	observersMu sync.RWMutex
	observers   map[int]MutationObserver
	nextObs     int

	logger *logger.Logger
}

// NewMutationManager returns a manager over remote. collection names the
// entity type in logs and notifications.
func NewMutationManager[T models.Record[T], P models.Patch[T]](collection string, remote adapter.Collection[T, P], notifier Notifier, log *logger.Logger) *MutationManager[T, P] {
	if log == nil {
		log = logger.Nop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	m := &MutationManager[T, P]{
		collection: collection,
		remote:     remote,
		cache:      cache.New[T](),
		debouncer:  NewDebouncer(),
		notifier:   notifier,
		observers:  make(map[int]MutationObserver),
		logger:     log,
	}
	m.scope.Store("")

	return m
}

// WithValidator makes the manager reject invalid payloads before they reach
// the cache. A rejected payload yields [adapter.ErrValidationFailure].
func (m *MutationManager[T, P]) WithValidator(v validators.Validator) *MutationManager[T, P] {
	m.validator = v
	return m
}

// Name returns the collection name.
func (m *MutationManager[T, P]) Name() string { return m.collection }

// SetScope selects the site whose entities are listed on refetch.
func (m *MutationManager[T, P]) SetScope(scope string) { m.scope.Store(scope) }

// Scope returns the current site scope.
func (m *MutationManager[T, P]) Scope() string { return m.scope.Load().(string) }

// Cache returns the underlying entity cache.
func (m *MutationManager[T, P]) Cache() *cache.Cache[T] { return m.cache }

// List returns the cached collection.
func (m *MutationManager[T, P]) List() []T { return m.cache.List() }

// Get returns the cached entity id.
func (m *MutationManager[T, P]) Get(id string) (T, bool) { return m.cache.Get(id) }

// Subscribe registers a cache change listener.
func (m *MutationManager[T, P]) Subscribe(fn cache.Listener[T]) (unsubscribe func()) {
	return m.cache.Subscribe(fn)
}

// IsLoading reports whether a full refetch is running.
func (m *MutationManager[T, P]) IsLoading() bool { return m.loading.Load() > 0 }

// Observe registers fn for every mutation state transition.
func (m *MutationManager[T, P]) Observe(fn MutationObserver) (cancel func()) {
	m.observersMu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	m.observersMu.Unlock()

	return func() {
		m.observersMu.Lock()
		delete(m.observers, id)
		m.observersMu.Unlock()
	}
}

// Load fetches the collection for the first time.
func (m *MutationManager[T, P]) Load(ctx context.Context) error {
	if err := m.Invalidate(ctx); err != nil {
		m.notifier.Notify(ctx, Notification{Collection: m.collection, Title: "failed to load " + m.collection, Err: err})
		return err
	}
	return nil
}

// Invalidate replaces the cache with a fresh full list of the current scope.
func (m *MutationManager[T, P]) Invalidate(ctx context.Context) error {
	m.refetchMu.Lock()
	defer m.refetchMu.Unlock()

	m.loading.Add(1)
	defer m.loading.Add(-1)

	scope := m.Scope()
	items, err := m.remote.List(ctx, scope)
	if err != nil {
		logger.Ctx(ctx, m.logger).Err(err).
			Str("func", "MutationManager.Invalidate").
			Str("collection", m.collection).
			Str("scope", scope).
			Msg("failed to refetch collection")
		return fmt.Errorf("refetch %s: %w", m.collection, err)
	}

	m.cache.SetAll(items)
	return nil
}

// Apply merges patch into the cached entity id and sends it to the remote.
func (m *MutationManager[T, P]) Apply(ctx context.Context, id string, patch P) (T, error) {
	if err := m.validate(ctx, "MutationManager.Apply", patch); err != nil {
		var zero T
		return zero, err
	}

	rev, _ := m.cache.UpdateRevision(id, patch.ApplyTo)
	return m.update(ctx, MutationUpdate, id, patch, rev)
}

// ApplyDebounced merges patch into the cache now and sends only the latest
// patch of id once no further call arrived within delay.
func (m *MutationManager[T, P]) ApplyDebounced(ctx context.Context, id string, patch P, delay time.Duration) error {
	if err := m.validate(ctx, "MutationManager.ApplyDebounced", patch); err != nil {
		return err
	}

	rev, _ := m.cache.UpdateRevision(id, patch.ApplyTo)

	detached := context.WithoutCancel(ctx)
	scheduled := m.debouncer.Schedule(id, delay, func() {
		_, _ = m.update(detached, MutationDebouncedUpdate, id, patch, rev)
	})
	if !scheduled {
		logger.Ctx(ctx, m.logger).Warn().
			Str("func", "MutationManager.ApplyDebounced").
			Str("collection", m.collection).
			Str("id", id).
			Msg("manager closed, debounced write dropped")
	}
	return nil
}

// update sends patch of id. rev is the local revision the patch produced;
// the server value is only applied while no newer local edit of id exists.
func (m *MutationManager[T, P]) update(ctx context.Context, kind MutationKind, id string, patch P, rev uint64) (T, error) {
	var zero T

	seq := m.issue(kind, id)
	if models.IsPlaceholderID(id) {
		err := fmt.Errorf("%w: %s", ErrEntityNotPersisted, id)
		m.fail(ctx, seq, kind, []string{id}, err)
		return zero, err
	}

	m.inflight.Add(1)
	server, err := m.remote.Update(context.WithoutCancel(ctx), id, patch)
	m.inflight.Done()
	if err != nil {
		m.fail(ctx, seq, kind, []string{id}, err)
		return zero, err
	}

	m.reconcile(ctx, server, rev)
	m.emit(MutationEvent{Seq: seq, Kind: kind, EntityIDs: []string{id}, State: MutationConfirmed})
	return server, nil
}

// reconcile applies a confirmed server value. Entities removed meanwhile stay
// removed and a newer local edit keeps its optimistic value until its own
// response arrives.
func (m *MutationManager[T, P]) reconcile(ctx context.Context, server T, rev uint64) {
	if m.cache.ReconcileAt(server, rev) {
		return
	}

	id := server.EntityID()
	if _, ok := m.cache.Get(id); !ok {
		logger.Ctx(ctx, m.logger).Debug().
			Str("func", "MutationManager.reconcile").
			Str("collection", m.collection).
			Str("id", id).
			Msg("entity removed before confirmation, server value dropped")
		return
	}
	if m.cache.Revision(id) != rev {
		logger.Ctx(ctx, m.logger).Debug().
			Str("func", "MutationManager.reconcile").
			Str("collection", m.collection).
			Str("id", id).
			Msg("newer local edit pending, server value dropped")
	}
}

// ApplyMany merges every patch and sends one remote update per target
// concurrently. Failures are reported as one [ErrBulkMutationFailed] error
// with a single notification and a single invalidation. The returned slice
// holds the confirmed server values of the successful targets.
func (m *MutationManager[T, P]) ApplyMany(ctx context.Context, targets []UpdateTarget[P]) ([]T, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	for _, target := range targets {
		if err := m.validate(ctx, "MutationManager.ApplyMany", target.Patch); err != nil {
			return nil, fmt.Errorf("%s: %w", target.ID, err)
		}
	}

	ids := make([]string, len(targets))
	revs := make([]uint64, len(targets))
	for i, target := range targets {
		ids[i] = target.ID
		revs[i], _ = m.cache.UpdateRevision(target.ID, target.Patch.ApplyTo)
	}
	seq := m.issue(MutationBulkUpdate, ids...)

	detached := context.WithoutCancel(ctx)
	results := make([]T, len(targets))
	errs := make([]error, len(targets))
	ok := make([]bool, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		if models.IsPlaceholderID(target.ID) {
			errs[i] = fmt.Errorf("%w: %s", ErrEntityNotPersisted, target.ID)
			continue
		}

		wg.Add(1)
		m.inflight.Add(1)
		go func() {
			defer wg.Done()
			defer m.inflight.Done()

			server, err := m.remote.Update(detached, target.ID, target.Patch)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", target.ID, err)
				return
			}
			results[i], ok[i] = server, true
		}()
	}
	wg.Wait()

	confirmed := make([]T, 0, len(targets))
	for i := range targets {
		if ok[i] {
			m.reconcile(ctx, results[i], revs[i])
			confirmed = append(confirmed, results[i])
		}
	}

	if joined := errors.Join(errs...); joined != nil {
		err := fmt.Errorf("%w: %w", ErrBulkMutationFailed, joined)
		m.fail(ctx, seq, MutationBulkUpdate, ids, err)
		return confirmed, err
	}

	m.emit(MutationEvent{Seq: seq, Kind: MutationBulkUpdate, EntityIDs: ids, State: MutationConfirmed})
	return confirmed, nil
}

// Add inserts item under a placeholder id and creates it on the remote.
// On success the placeholder is replaced by the server copy.
func (m *MutationManager[T, P]) Add(ctx context.Context, item T) (T, error) {
	var zero T
	if err := m.validate(ctx, "MutationManager.Add", item); err != nil {
		return zero, err
	}

	placeholder := models.NewPlaceholderID()
	m.cache.Add(item.WithID(placeholder))
	seq := m.issue(MutationCreate, placeholder)

	m.inflight.Add(1)
	created, err := m.remote.Create(context.WithoutCancel(ctx), item.WithID(""))
	m.inflight.Done()
	if err != nil {
		m.fail(ctx, seq, MutationCreate, []string{placeholder}, err)
		return zero, err
	}

	m.cache.Replace(placeholder, created)
	m.emit(MutationEvent{Seq: seq, Kind: MutationCreate, EntityIDs: []string{created.EntityID()}, State: MutationConfirmed})
	return created, nil
}

// Remove deletes id from the cache and then from the remote.
func (m *MutationManager[T, P]) Remove(ctx context.Context, id string) error {
	m.debouncer.Cancel(id)
	m.cache.Remove(id)
	seq := m.issue(MutationDelete, id)

	if models.IsPlaceholderID(id) {
		err := fmt.Errorf("%w: %s", ErrEntityNotPersisted, id)
		m.fail(ctx, seq, MutationDelete, []string{id}, err)
		return err
	}

	m.inflight.Add(1)
	_, err := m.remote.Delete(context.WithoutCancel(ctx), id)
	m.inflight.Done()
	if err != nil {
		m.fail(ctx, seq, MutationDelete, []string{id}, err)
		return err
	}

	m.emit(MutationEvent{Seq: seq, Kind: MutationDelete, EntityIDs: []string{id}, State: MutationConfirmed})
	return nil
}

// RemoveMany deletes ids from the cache and then from the remote in one call.
func (m *MutationManager[T, P]) RemoveMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := m.validate(ctx, "MutationManager.RemoveMany", ids); err != nil {
		return err
	}

	for _, id := range ids {
		m.debouncer.Cancel(id)
	}
	m.cache.RemoveMany(ids)
	seq := m.issue(MutationBulkDelete, ids...)

	m.inflight.Add(1)
	err := m.remote.DeleteMany(context.WithoutCancel(ctx), ids)
	m.inflight.Done()
	if err != nil {
		m.fail(ctx, seq, MutationBulkDelete, ids, err)
		return err
	}

	m.emit(MutationEvent{Seq: seq, Kind: MutationBulkDelete, EntityIDs: ids, State: MutationConfirmed})
	return nil
}

// Pending returns the number of debounced writes not yet sent.
func (m *MutationManager[T, P]) Pending() int { return m.debouncer.Pending() }

// Flush sends every pending debounced write now and waits for the results.
func (m *MutationManager[T, P]) Flush() { m.debouncer.Flush() }

// Close drops pending debounced writes and waits for dispatched calls.
func (m *MutationManager[T, P]) Close() {
	m.debouncer.Stop()
	m.inflight.Wait()
}

// validate checks obj with the configured validator. Nothing has been
// applied to the cache yet, so a rejection needs no refetch.
func (m *MutationManager[T, P]) validate(ctx context.Context, fn string, obj any) error {
	if m.validator == nil {
		return nil
	}
	if err := m.validator.Validate(ctx, obj); err != nil {
		logger.Ctx(ctx, m.logger).Warn().Err(err).
			Str("func", fn).
			Str("collection", m.collection).
			Msg("payload rejected before mutation")
		return fmt.Errorf("%w: %w", adapter.ErrValidationFailure, err)
	}
	return nil
}

func (m *MutationManager[T, P]) issue(kind MutationKind, ids ...string) uint64 {
	seq := m.seq.Add(1)
	m.emit(MutationEvent{Seq: seq, Kind: kind, EntityIDs: ids, State: MutationIssued})
	return seq
}

// fail reports err and refetches the collection.
func (m *MutationManager[T, P]) fail(ctx context.Context, seq uint64, kind MutationKind, ids []string, err error) {
	logger.Ctx(ctx, m.logger).Err(err).
		Str("func", "MutationManager.fail").
		Str("collection", m.collection).
		Str("kind", string(kind)).
		Strs("ids", ids).
		Msg("mutation failed, invalidating collection")

	m.notifier.Notify(ctx, Notification{
		Collection: m.collection,
		Title:      fmt.Sprintf("failed to %s %s", kind, m.collection),
		Err:        err,
	})

	// the refetch result is not part of the mutation outcome
	_ = m.Invalidate(context.WithoutCancel(ctx))

	m.emit(MutationEvent{Seq: seq, Kind: kind, EntityIDs: ids, State: MutationFailed, Err: err})
}

func (m *MutationManager[T, P]) emit(ev MutationEvent) {
	ev.Collection = m.collection

	m.observersMu.RLock()
	observers := make([]MutationObserver, 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.observersMu.RUnlock()

	for _, fn := range observers {
		fn(ev)
	}
}
