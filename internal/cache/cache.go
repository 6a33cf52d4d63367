// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache holds the in-memory mirror of remote entity collections.
//
// A [Cache] is the single source of truth the UI reads from. Every writer
// (optimistic mutations, reconciliation with server responses, full
// refetches) goes through its primitives; nothing mutates the entities
// directly. Subscribers are notified after each change that actually
// modified the state.
package cache

import (
	"reflect"
	"slices"
	"sync"

	"github.com/MKhiriev/facility-ops/models"
)

// Listener receives a snapshot of the collection after a change. Snapshots
// arrive in version order; concurrent writes may be coalesced so that a
// listener only sees the newest of them.
type Listener[T any] func(snapshot []T)

// Cache is a concurrency-safe ordered collection of records keyed by id.
type Cache[T models.Record[T]] struct {
	mu      sync.RWMutex
	order   []string
	items   map[string]T
	version uint64

	// revs counts the local edits of every record made through Update.
	revs map[string]uint64

	listenersMu sync.Mutex
	listeners   map[int]Listener[T]
	nextID      int

	deliverMu      sync.Mutex
	delivering     bool
	delivered      uint64
	pending        []T
	pendingVersion uint64
}

// New returns an empty cache.
func New[T models.Record[T]]() *Cache[T] {
	return &Cache[T]{
		items:     make(map[string]T),
		revs:      make(map[string]uint64),
		listeners: make(map[int]Listener[T]),
	}
}

// SetAll replaces the whole collection with items, keeping their order.
func (c *Cache[T]) SetAll(items []T) {
	c.mu.Lock()
	c.order = make([]string, 0, len(items))
	c.items = make(map[string]T, len(items))
	for _, item := range items {
		id := item.EntityID()
		if _, dup := c.items[id]; !dup {
			c.order = append(c.order, id)
		}
		c.items[id] = item
	}
	for id := range c.revs {
		if _, ok := c.items[id]; !ok {
			delete(c.revs, id)
		}
	}
	version, snapshot := c.bumpLocked()
	c.mu.Unlock()

	c.notify(version, snapshot)
}

// Add appends item, or overwrites the record with the same id in place.
func (c *Cache[T]) Add(item T) {
	c.mu.Lock()
	id := item.EntityID()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = item
	version, snapshot := c.bumpLocked()
	c.mu.Unlock()

	c.notify(version, snapshot)
}

// Update replaces the record with id by fn(record). It reports false when
// no such record exists.
func (c *Cache[T]) Update(id string, fn func(T) T) bool {
	_, ok := c.UpdateRevision(id, fn)
	return ok
}

// UpdateRevision is Update that also returns the local revision of the
// record after the change. Pass it to [Cache.ReconcileAt] to confirm
// exactly this edit.
func (c *Cache[T]) UpdateRevision(id string, fn func(T) T) (uint64, bool) {
	c.mu.Lock()
	item, ok := c.items[id]
	if !ok {
		c.mu.Unlock()
		return 0, false
	}
	c.items[id] = fn(item)
	c.revs[id]++
	rev := c.revs[id]
	version, snapshot := c.bumpLocked()
	c.mu.Unlock()

	c.notify(version, snapshot)
	return rev, true
}

// Revision returns the local revision of the record with id, zero when it
// was never updated.
func (c *Cache[T]) Revision(id string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.revs[id]
}

// Reconcile stores a server-confirmed value over the cached record with the
// same id. Unknown ids are ignored: a record removed while its update was in
// flight stays removed. When the cached record is already equal to confirmed
// nothing changes and no listener fires, so an optimistic value that matched
// the server does not cause a second render. It reports whether the state
// changed.
func (c *Cache[T]) Reconcile(confirmed T) bool {
	return c.reconcile(confirmed, 0, false)
}

// ReconcileAt is Reconcile that only applies while the record is still at
// local revision rev. A newer local edit wins over the confirmation of an
// older one.
func (c *Cache[T]) ReconcileAt(confirmed T, rev uint64) bool {
	return c.reconcile(confirmed, rev, true)
}

func (c *Cache[T]) reconcile(confirmed T, rev uint64, checkRev bool) bool {
	c.mu.Lock()
	id := confirmed.EntityID()
	current, ok := c.items[id]
	if !ok || (checkRev && c.revs[id] != rev) || reflect.DeepEqual(current, confirmed) {
		c.mu.Unlock()
		return false
	}
	c.items[id] = confirmed
	version, snapshot := c.bumpLocked()
	c.mu.Unlock()

	c.notify(version, snapshot)
	return true
}

// Replace swaps the record stored under oldID for item, keeping its
// position. If oldID is unknown item is appended.
func (c *Cache[T]) Replace(oldID string, item T) {
	c.mu.Lock()
	newID := item.EntityID()
	idx := slices.Index(c.order, oldID)
	switch {
	case idx >= 0:
		delete(c.items, oldID)
		delete(c.revs, oldID)
		if _, dup := c.items[newID]; dup {
			c.order = slices.Delete(c.order, idx, idx+1)
		} else {
			c.order[idx] = newID
		}
	default:
		if _, dup := c.items[newID]; !dup {
			c.order = append(c.order, newID)
		}
	}
	c.items[newID] = item
	version, snapshot := c.bumpLocked()
	c.mu.Unlock()

	c.notify(version, snapshot)
}

// Remove deletes the record with id. It reports whether it existed.
func (c *Cache[T]) Remove(id string) bool {
	return c.RemoveMany([]string{id}) > 0
}

// RemoveMany deletes every record in ids and returns how many existed.
func (c *Cache[T]) RemoveMany(ids []string) int {
	c.mu.Lock()
	removed := 0
	for _, id := range ids {
		if _, ok := c.items[id]; ok {
			delete(c.items, id)
			delete(c.revs, id)
			removed++
		}
	}
	if removed == 0 {
		c.mu.Unlock()
		return 0
	}
	c.order = slices.DeleteFunc(c.order, func(id string) bool {
		_, ok := c.items[id]
		return !ok
	})
	version, snapshot := c.bumpLocked()
	c.mu.Unlock()

	c.notify(version, snapshot)
	return removed
}

// Get returns the record with id.
func (c *Cache[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	return item, ok
}

// List returns a snapshot of all records in insertion order.
func (c *Cache[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshotLocked()
}

// Len returns the number of records.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

// Version is incremented on every change that modified the collection.
func (c *Cache[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// Subscribe registers fn to be called after every change. The returned
// func removes the subscription.
func (c *Cache[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

func (c *Cache[T]) bumpLocked() (uint64, []T) {
	c.version++
	return c.version, c.snapshotLocked()
}

func (c *Cache[T]) snapshotLocked() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// notify runs outside c.mu so listeners may read and write the cache. One
// writer at a time delivers; writers arriving meanwhile leave their snapshot
// in pending and the active one delivers the newest of them before
// returning. Snapshots older than the last delivered one are dropped.
func (c *Cache[T]) notify(version uint64, snapshot []T) {
	c.deliverMu.Lock()
	if version <= c.delivered || version <= c.pendingVersion {
		c.deliverMu.Unlock()
		return
	}
	c.pending, c.pendingVersion = snapshot, version
	if c.delivering {
		c.deliverMu.Unlock()
		return
	}

	c.delivering = true
	for c.pendingVersion > c.delivered {
		snap := c.pending
		c.delivered = c.pendingVersion
		c.pending = nil
		c.deliverMu.Unlock()

		c.deliver(snap)

		c.deliverMu.Lock()
	}
	c.delivering = false
	c.deliverMu.Unlock()
}

func (c *Cache[T]) deliver(snapshot []T) {
	c.listenersMu.Lock()
	listeners := make([]Listener[T], 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}
