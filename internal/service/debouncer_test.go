// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_LastScheduleWins(t *testing.T) {
	d := NewDebouncer()
	defer d.Stop()

	var (
		mu    sync.Mutex
		fired []int
	)
	done := make(chan struct{})
	for i := 1; i <= 5; i++ {
		d.Schedule("d1", 30*time.Millisecond, func() {
			mu.Lock()
			fired = append(fired, i)
			mu.Unlock()
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced task did not fire")
	}
	// даём время сработать «лишним» таймерам, если бы они были
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, fired)
	assert.Zero(t, d.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer()
	defer d.Stop()

	var calls atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)
	d.Schedule("a", 10*time.Millisecond, func() { calls.Add(1); wg.Done() })
	d.Schedule("b", 10*time.Millisecond, func() { calls.Add(1); wg.Done() })
	wg.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer()
	defer d.Stop()

	var calls atomic.Int32
	d.Schedule("a", 20*time.Millisecond, func() { calls.Add(1) })
	assert.True(t, d.Cancel("a"))
	assert.False(t, d.Cancel("a"))

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebouncer_FlushRunsPendingNow(t *testing.T) {
	d := NewDebouncer()
	defer d.Stop()

	var order []string
	d.Schedule("b", time.Hour, func() { order = append(order, "b") })
	d.Schedule("a", time.Hour, func() { order = append(order, "a") })
	require.Equal(t, 2, d.Pending())

	d.Flush()

	assert.Equal(t, []string{"a", "b"}, order)
	assert.Zero(t, d.Pending())
}

func TestDebouncer_StopRejectsSchedule(t *testing.T) {
	d := NewDebouncer()

	var calls atomic.Int32
	d.Schedule("a", 10*time.Millisecond, func() { calls.Add(1) })
	d.Stop()

	assert.False(t, d.Schedule("a", time.Millisecond, func() { calls.Add(1) }))
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebouncer_StopWaitsForRunningTask(t *testing.T) {
	d := NewDebouncer()

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	require.True(t, d.Schedule("a", time.Millisecond, func() {
		close(started)
		<-release
		finished.Store(true)
	}))

	<-started

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a task was still running")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the task finished")
	}
	assert.True(t, finished.Load())
	assert.Zero(t, d.Pending())
}
