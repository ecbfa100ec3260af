//go:build !windows

package dbus

import (
	"fmt"
)

// EmitNotification emits the Notification signal. Editor shims subscribe to
// it to show pipecue's errors in the editor.
func (s *CueServer) EmitNotification(summary, body, level string) error {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := conn.Emit(DBusPath, DBusInterface+".Notification", summary, body, level)
	if err != nil {
		return fmt.Errorf("failed to emit Notification signal: %w", err)
	}

	s.logger.Debug("emitted Notification signal", "summary", summary, "level", level)
	return nil
}
