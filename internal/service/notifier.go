// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/facility-ops/internal/logger"
)

// Notification is a user-facing message about a failed operation.
type Notification struct {
	// Collection is the entity collection the failure belongs to, or empty.
	Collection string
	Title      string
	Err        error
}

// Notifier delivers notifications to the user (toast, status bar).
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a func to [Notifier].
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// LogNotifier writes notifications to the log. It is the notifier of the
// headless client.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Notify(ctx context.Context, note Notification) {
	logger.Ctx(ctx, n.logger).Warn().
		Err(note.Err).
		Str("func", "LogNotifier.Notify").
		Str("collection", note.Collection).
		Msg(note.Title)
}
