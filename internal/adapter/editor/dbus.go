//go:build !windows

package editor

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/pipecue/internal/dbus"
	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

// DBusAdapter receives document events as method calls on the session bus.
type DBusAdapter struct {
	logger *slog.Logger
	server *dbus.CueServer
}

func newDBusAdapter(logger *slog.Logger) (Adapter, error) {
	return NewDBusAdapter(logger), nil
}

// NewDBusAdapter creates a DBusAdapter.
func NewDBusAdapter(logger *slog.Logger) *DBusAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DBusAdapter{
		logger: logger,
		server: dbus.NewCueServer(logger),
	}
}

// Name returns the adapter identifier.
func (a *DBusAdapter) Name() string {
	return "dbus"
}

// Serve claims the bus name and handles calls until ctx is done.
func (a *DBusAdapter) Serve(ctx context.Context, sink Sink) error {
	a.bind(sink)

	if err := a.server.Start(); err != nil {
		return &AdapterError{Transport: "dbus", Message: "failed to start cue server", Err: err}
	}

	<-ctx.Done()

	if err := a.server.Stop(); err != nil {
		a.logger.Warn("error stopping cue server", "error", err)
	}
	return nil
}

func (a *DBusAdapter) bind(sink Sink) {
	snapshot := func(visible []string, count int, known []string) tracker.Snapshot {
		return tracker.Snapshot{Visible: visible, VisibleCount: count, Known: known}
	}
	a.server.SetOpenedHandler(func(visible []string, count int, known []string) {
		sink.DocumentOpened(snapshot(visible, count, known))
	})
	a.server.SetClosedHandler(func(visible []string, count int, known []string) {
		sink.DocumentClosed(snapshot(visible, count, known))
	})
	a.server.SetSyncHandler(func(visible []string, count int, known []string) {
		sink.Sync(snapshot(visible, count, known))
	})
}

// Notifier returns a notifier that emits the Notification signal.
func (a *DBusAdapter) Notifier() notify.Notifier {
	return dbusNotifier{a}
}

type dbusNotifier struct {
	a *DBusAdapter
}

func (n dbusNotifier) Notify(key, summary, body string, level notify.Level) {
	if !n.a.server.IsRunning() {
		n.a.logger.Debug("editor message dropped: cue server not running", "key", key)
		return
	}
	if err := n.a.server.EmitNotification(summary, body, level.String()); err != nil {
		n.a.logger.Debug("editor message dropped", "key", key, "error", err)
	}
}
