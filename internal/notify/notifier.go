// Package notify delivers user-visible messages about pipecue's own
// failures: to the editor, to the desktop, or only to the log.
package notify

import (
	"log/slog"
	"sync"
)

// Level indicates the severity of a notification.
type Level int

const (
	// LevelInfo is for informational messages (low urgency).
	LevelInfo Level = iota
	// LevelWarning is for warning messages (normal urgency).
	LevelWarning
	// LevelError is for error messages (critical urgency).
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier shows a message to the user. Implementations must not block the
// caller for long and must not fail loudly.
type Notifier interface {
	// Notify shows summary and body. key groups repeats of the same message.
	Notify(key, summary, body string, level Level)
}

// Log writes notifications to the logger only.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a log-only notifier.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Notify logs the message at the matching level.
func (n *Log) Notify(key, summary, body string, level Level) {
	attrs := []any{"key", key, "body", body}
	switch level {
	case LevelError:
		n.logger.Error(summary, attrs...)
	case LevelWarning:
		n.logger.Warn(summary, attrs...)
	default:
		n.logger.Info(summary, attrs...)
	}
}

// Multi fans a notification out to several notifiers. Nil entries are
// skipped. The set can be changed while in use.
type Multi struct {
	mu        sync.RWMutex
	notifiers []Notifier
}

// NewMulti creates a Multi over the given notifiers.
func NewMulti(notifiers ...Notifier) *Multi {
	m := &Multi{}
	m.Set(notifiers...)
	return m
}

// Set replaces the notifiers.
func (m *Multi) Set(notifiers ...Notifier) {
	kept := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			kept = append(kept, n)
		}
	}

	m.mu.Lock()
	m.notifiers = kept
	m.mu.Unlock()
}

// Notify forwards to every notifier.
func (m *Multi) Notify(key, summary, body string, level Level) {
	m.mu.RLock()
	notifiers := m.notifiers
	m.mu.RUnlock()

	for _, n := range notifiers {
		n.Notify(key, summary, body, level)
	}
}
