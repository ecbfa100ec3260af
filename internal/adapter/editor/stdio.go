package editor

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

// Event names accepted on the stdio transport.
const (
	EventOpened = "opened"
	EventClosed = "closed"
	EventSync   = "sync"
)

// maxLineSize bounds one event line; documents lists can be long.
const maxLineSize = 4 * 1024 * 1024

// StdioAdapter reads newline-delimited JSON events from an editor-side shim
// and writes notifications back as JSON lines.
type StdioAdapter struct {
	reader io.Reader
	logger *slog.Logger

	mu     sync.Mutex
	writer io.Writer
}

// NewStdioAdapter creates a StdioAdapter on os.Stdin and os.Stdout.
func NewStdioAdapter(logger *slog.Logger) *StdioAdapter {
	return NewStdioAdapterWithIO(os.Stdin, os.Stdout, logger)
}

// NewStdioAdapterWithIO creates a StdioAdapter with a custom reader and writer.
func NewStdioAdapterWithIO(r io.Reader, w io.Writer, logger *slog.Logger) *StdioAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &StdioAdapter{reader: r, writer: w, logger: logger}
}

// Name returns the adapter identifier.
func (a *StdioAdapter) Name() string {
	return "stdio"
}

// stdioEvent is one input line.
type stdioEvent struct {
	Event        string   `json:"event"`
	Visible      []string `json:"visible"`
	VisibleCount *int     `json:"visible_count,omitempty"`
	Known        []string `json:"known"`
}

// snapshot converts the event, counting the visible list when the shim did
// not send a count.
func (e stdioEvent) snapshot() tracker.Snapshot {
	count := len(e.Visible)
	if e.VisibleCount != nil {
		count = *e.VisibleCount
	}
	return tracker.Snapshot{
		Visible:      e.Visible,
		VisibleCount: count,
		Known:        e.Known,
	}
}

// Serve reads events until EOF or ctx is done. Malformed lines are logged
// and skipped.
func (a *StdioAdapter) Serve(ctx context.Context, sink Sink) error {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.reader)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errCh <- nil
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-errCh; err != nil {
					return &AdapterError{Transport: "stdio", Message: "failed to read events", Err: err}
				}
				a.logger.Debug("editor closed stdin")
				return nil
			}
			a.handleLine(line, sink)
		}
	}
}

func (a *StdioAdapter) handleLine(line string, sink Sink) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	var ev stdioEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		a.logger.Warn("skipping malformed event", "error", err)
		return
	}
	if ev.VisibleCount != nil && *ev.VisibleCount < 0 {
		a.logger.Warn("skipping event with negative visible count", "event", ev.Event)
		return
	}

	switch ev.Event {
	case EventOpened:
		sink.DocumentOpened(ev.snapshot())
	case EventClosed:
		sink.DocumentClosed(ev.snapshot())
	case EventSync:
		sink.Sync(ev.snapshot())
	default:
		a.logger.Warn("skipping unknown event", "event", ev.Event)
	}
}

// stdioNotification is one output line.
type stdioNotification struct {
	Type    string `json:"type"`
	Key     string `json:"key"`
	Level   string `json:"level"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

// Notifier returns a notifier that writes notify lines to the editor.
func (a *StdioAdapter) Notifier() notify.Notifier {
	return stdioNotifier{a}
}

type stdioNotifier struct {
	a *StdioAdapter
}

func (n stdioNotifier) Notify(key, summary, body string, level notify.Level) {
	data, err := json.Marshal(stdioNotification{
		Type:    "notify",
		Key:     key,
		Level:   level.String(),
		Summary: summary,
		Body:    body,
	})
	if err != nil {
		n.a.logger.Debug("failed to encode notification", "error", err)
		return
	}

	n.a.mu.Lock()
	defer n.a.mu.Unlock()
	if _, err := n.a.writer.Write(append(data, '\n')); err != nil {
		n.a.logger.Debug("failed to write notification", "error", err)
	}
}
