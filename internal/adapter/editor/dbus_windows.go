//go:build windows

package editor

import (
	"log/slog"
)

func newDBusAdapter(logger *slog.Logger) (Adapter, error) {
	return nil, &AdapterError{
		Transport: "dbus",
		Message:   "D-Bus transport is not available on windows",
	}
}
