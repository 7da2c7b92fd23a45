// Package notify is the in-process notification bus of the reader UI.
package notify

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/lectern/internal/core/notify"
)

const defaultHistory = 50

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus dispatches notifications to subscribers inline and keeps a short
// history. It is safe to use from the Bubble Tea update loop and from
// commands running in goroutines.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	history     []notify.Notification
	logger      zerolog.Logger
}

// NewBus creates a notification bus. Every notification is also written to
// logger.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish records a notification and dispatches it to all subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.logger.WithLevel(zerologLevel(n.Level)).Str("notification", string(n.Level)).Msg(n.Message)

	b.mu.Lock()
	b.history = append(b.history, n)
	if len(b.history) > defaultHistory {
		b.history = b.history[len(b.history)-defaultHistory:]
	}
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{Level: notify.LevelError, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(notify.Notification{Level: notify.LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(notify.Notification{Level: notify.LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// History returns the retained notifications, newest first.
func (b *Bus) History() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := slices.Clone(b.history)
	slices.Reverse(out)
	return out
}

func zerologLevel(l notify.Level) zerolog.Level {
	switch l {
	case notify.LevelError:
		return zerolog.ErrorLevel
	case notify.LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
