//go:build windows

package notify

import (
	"errors"
	"log/slog"
)

// ErrNoSessionBus is returned by NewDesktop where there is no freedesktop
// session bus.
var ErrNoSessionBus = errors.New("desktop notifications need a D-Bus session bus")

// Desktop is unavailable on Windows.
type Desktop struct{}

// NewDesktop always fails on Windows; callers fall back to their other
// notifiers.
func NewDesktop(appName string, logger *slog.Logger) (*Desktop, error) {
	return nil, ErrNoSessionBus
}

// Notify does nothing.
func (d *Desktop) Notify(key, summary, body string, level Level) {}
