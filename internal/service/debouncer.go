// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"slices"
	"sync"
	"time"
)

// Debouncer keeps at most one scheduled task per key. Scheduling a key
// again replaces its task; the replaced task never runs.
type Debouncer struct {
	mu      sync.Mutex
	tasks   map[string]*debounceTask
	gen     uint64
	stopped bool

	// running counts tasks released from tasks and not yet returned.
	running sync.WaitGroup
}

type debounceTask struct {
	gen   uint64
	timer *time.Timer
	fn    func()
}

func NewDebouncer() *Debouncer {
	return &Debouncer{tasks: make(map[string]*debounceTask)}
}

// Schedule runs fn after delay unless key is scheduled again, cancelled or
// flushed first. It reports false when the debouncer is stopped.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}
	if prev, ok := d.tasks[key]; ok {
		prev.timer.Stop()
	}

	d.gen++
	gen := d.gen
	task := &debounceTask{gen: gen, fn: fn}
	// a timer that already fired finds a newer generation and returns
	task.timer = time.AfterFunc(delay, func() { d.fire(key, gen) })
	d.tasks[key] = task

	return true
}

func (d *Debouncer) fire(key string, gen uint64) {
	d.mu.Lock()
	task, ok := d.tasks[key]
	if !ok || task.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.tasks, key)
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	task.fn()
}

// Cancel drops the task of key. It reports whether a task was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	task, ok := d.tasks[key]
	if ok {
		task.timer.Stop()
		delete(d.tasks, key)
	}
	return ok
}

// Pending returns the number of scheduled tasks.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.tasks)
}

// Flush runs every pending task now, in key order, and returns when all of
// them have returned.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.tasks))
	for key := range d.tasks {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	fns := make([]func(), 0, len(keys))
	for _, key := range keys {
		task := d.tasks[key]
		task.timer.Stop()
		fns = append(fns, task.fn)
		delete(d.tasks, key)
	}
	d.running.Add(len(fns))
	d.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer d.running.Done()
			fn()
		}()
	}
}

// Stop cancels every pending task, rejects further scheduling and waits for
// the tasks that already started.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	for key, task := range d.tasks {
		task.timer.Stop()
		delete(d.tasks, key)
	}
	d.mu.Unlock()

	d.running.Wait()
}
