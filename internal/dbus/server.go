//go:build !windows

package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the pipecue interface name.
	DBusInterface = "io.github.jmylchreest.PipeCue"
	// DBusPath is the pipecue object path.
	DBusPath = "/io/github/jmylchreest/PipeCue"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.PipeCue"
)

// EventHandler receives one editor event. visibleCount is the editor's own
// count of visible document views.
type EventHandler func(visible []string, visibleCount int, known []string)

// CueServer implements the io.github.jmylchreest.PipeCue D-Bus interface.
// Calls are handed to the handlers one at a time.
type CueServer struct {
	logger *slog.Logger
	conn   *dbus.Conn

	// Handlers
	openedHandler EventHandler
	closedHandler EventHandler
	syncHandler   EventHandler

	// Serializes handler calls
	callMu sync.Mutex

	// Guards conn and running
	mu      sync.RWMutex
	running bool
}

// NewCueServer creates a new CueServer.
func NewCueServer(logger *slog.Logger) *CueServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CueServer{
		logger: logger,
	}
}

// SetOpenedHandler sets the handler called for DocumentOpened.
func (s *CueServer) SetOpenedHandler(handler EventHandler) {
	s.openedHandler = handler
}

// SetClosedHandler sets the handler called for DocumentClosed.
func (s *CueServer) SetClosedHandler(handler EventHandler) {
	s.closedHandler = handler
}

// SetSyncHandler sets the handler called for Sync.
func (s *CueServer) SetSyncHandler(handler EventHandler) {
	s.syncHandler = handler
}

// Start connects to the session bus and exports the pipecue service.
func (s *CueServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: cueMethods(),
				Signals: cueSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus cue server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name and unexports the object.
func (s *CueServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		_ = s.conn.Export(nil, DBusPath, DBusInterface)
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus cue server stopped")
	return nil
}

// DocumentOpened reports that a document was opened.
// D-Bus method: DocumentOpened(asias) -> nothing
func (s *CueServer) DocumentOpened(visible []string, visibleCount int32, known []string) *dbus.Error {
	s.logger.Debug("DocumentOpened called", "visible", len(visible), "visible_count", visibleCount)
	return s.dispatch(s.openedHandler, visible, visibleCount, known)
}

// DocumentClosed reports that a document was closed.
// D-Bus method: DocumentClosed(asias) -> nothing
func (s *CueServer) DocumentClosed(visible []string, visibleCount int32, known []string) *dbus.Error {
	s.logger.Debug("DocumentClosed called", "visible", len(visible), "visible_count", visibleCount)
	return s.dispatch(s.closedHandler, visible, visibleCount, known)
}

// Sync reports the editor's current layout without an open or close.
// D-Bus method: Sync(asias) -> nothing
func (s *CueServer) Sync(visible []string, visibleCount int32, known []string) *dbus.Error {
	s.logger.Debug("Sync called", "visible", len(visible), "visible_count", visibleCount)
	return s.dispatch(s.syncHandler, visible, visibleCount, known)
}

func (s *CueServer) dispatch(handler EventHandler, visible []string, visibleCount int32, known []string) *dbus.Error {
	if visibleCount < 0 {
		return dbus.MakeFailedError(fmt.Errorf("negative visible count %d", visibleCount))
	}
	if handler == nil {
		return nil
	}

	s.callMu.Lock()
	defer s.callMu.Unlock()
	handler(visible, int(visibleCount), known)
	return nil
}

// IsRunning returns whether the server owns the bus name.
func (s *CueServer) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// cueMethods returns the D-Bus method introspection data.
func cueMethods() []introspect.Method {
	eventArgs := []introspect.Arg{
		{Name: "visible", Type: "as", Direction: "in"},
		{Name: "visible_count", Type: "i", Direction: "in"},
		{Name: "known", Type: "as", Direction: "in"},
	}
	return []introspect.Method{
		{Name: "DocumentOpened", Args: eventArgs},
		{Name: "DocumentClosed", Args: eventArgs},
		{Name: "Sync", Args: eventArgs},
	}
}

// cueSignals returns the D-Bus signal introspection data.
func cueSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Notification",
			Args: []introspect.Arg{
				{Name: "summary", Type: "s"},
				{Name: "body", Type: "s"},
				{Name: "level", Type: "s"},
			},
		},
	}
}
