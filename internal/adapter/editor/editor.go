// Package editor provides the transports an editor uses to report document
// events to pipecue.
package editor

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/pipecue/internal/config"
	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

// Sink receives editor events in the order the editor sent them.
type Sink interface {
	DocumentOpened(snap tracker.Snapshot)
	DocumentClosed(snap tracker.Snapshot)
	// Sync reports the current layout without an open or close, e.g. at
	// activation.
	Sync(snap tracker.Snapshot)
}

// Adapter connects to an editor and feeds its events to a Sink.
type Adapter interface {
	// Name returns the transport identifier (e.g., "stdio", "lsp").
	Name() string

	// Serve delivers events to sink until the editor disconnects or ctx is
	// done. A disconnect is not an error.
	Serve(ctx context.Context, sink Sink) error

	// Notifier returns the editor's user-visible message surface.
	Notifier() notify.Notifier
}

// Options carries what the transports need besides their name.
type Options struct {
	Version string
	Logger  *slog.Logger
}

// NewAdapter creates an Adapter for the specified transport.
func NewAdapter(transport string, opts Options) (Adapter, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	switch transport {
	case config.TransportStdio:
		return NewStdioAdapter(opts.Logger), nil
	case config.TransportLSP:
		return NewLSPAdapter(opts.Version, opts.Logger), nil
	case config.TransportDBus:
		return newDBusAdapter(opts.Logger)
	default:
		return nil, &AdapterError{
			Transport: transport,
			Message:   "unknown editor transport",
		}
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Transport string
	Message   string
	Err       error
}

func (e *AdapterError) Error() string {
	msg := e.Message
	if e.Transport != "" {
		msg = e.Transport + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
