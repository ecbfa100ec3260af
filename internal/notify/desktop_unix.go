//go:build !windows

package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsInterface = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notifyMethod           = notificationsInterface + ".Notify"
)

// BusObject is the part of a D-Bus object used to send notifications.
type BusObject interface {
	Go(method string, flags dbus.Flags, ch chan *dbus.Call, args ...any) *dbus.Call
}

// Desktop sends freedesktop notifications over the session bus.
// Repeats of the same key are dropped within the minimum interval.
type Desktop struct {
	mu     sync.Mutex
	logger *slog.Logger
	obj    BusObject

	appName string

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	now            func() time.Time
}

// NewDesktop connects to the session bus.
func NewDesktop(appName string, logger *slog.Logger) (*Desktop, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewDesktopWithObject(conn.Object(notificationsInterface, notificationsPath), appName, logger), nil
}

// NewDesktopWithObject creates a Desktop that calls obj.
func NewDesktopWithObject(obj BusObject, appName string, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		logger:         logger,
		obj:            obj,
		appName:        appName,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second, // Don't repeat same notification within 5 seconds
		now:            time.Now,
	}
}

// Notify sends the notification without waiting for a reply.
func (d *Desktop) Notify(key, summary, body string, level Level) {
	d.mu.Lock()
	if last, ok := d.lastNotifyTime[key]; ok && d.now().Sub(last) < d.minInterval {
		d.mu.Unlock()
		d.logger.Debug("desktop notification rate-limited", "key", key, "summary", summary)
		return
	}
	d.lastNotifyTime[key] = d.now()
	d.mu.Unlock()

	// Map level to freedesktop urgency
	urgency := byte(1)
	icon := "dialog-warning"
	switch level {
	case LevelInfo:
		urgency = 0
		icon = "dialog-information"
	case LevelError:
		urgency = 2
		icon = "dialog-error"
	}

	hints := map[string]dbus.Variant{
		"urgency":   dbus.MakeVariant(urgency),
		"category":  dbus.MakeVariant("device"),
		"transient": dbus.MakeVariant(true),
	}

	call := d.obj.Go(notifyMethod, dbus.FlagNoReplyExpected, nil,
		d.appName, uint32(0), icon, summary, body, []string{}, hints, int32(5000))
	if call != nil && call.Err != nil {
		d.logger.Debug("desktop notification failed", "key", key, "error", call.Err)
	}
}
