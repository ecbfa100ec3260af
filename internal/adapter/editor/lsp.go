package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

const lsName = "pipecue"

// LSPAdapter runs pipecue as a language server over stdio. Any editor with
// a generic LSP client can attach it. LSP has no notion of visible editors,
// so every open document counts as visible and known.
type LSPAdapter struct {
	version string
	logger  *slog.Logger
	handler protocol.Handler

	// mu serializes document events and guards open and sink.
	mu   sync.Mutex
	open tracker.Set
	sink Sink

	notifyMu sync.RWMutex
	notify   glsp.NotifyFunc

	exitOnce sync.Once
	exited   chan struct{}
}

// NewLSPAdapter creates an LSPAdapter.
func NewLSPAdapter(version string, logger *slog.Logger) *LSPAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	a := &LSPAdapter{
		version: version,
		logger:  logger,
		open:    make(tracker.Set),
		exited:  make(chan struct{}),
	}
	a.handler = protocol.Handler{
		Initialize:           a.initialize,
		Initialized:          a.initialized,
		Shutdown:             a.shutdown,
		Exit:                 a.exit,
		SetTrace:             a.setTrace,
		TextDocumentDidOpen:  a.textDocumentDidOpen,
		TextDocumentDidClose: a.textDocumentDidClose,
	}
	return a
}

// Name returns the adapter identifier.
func (a *LSPAdapter) Name() string {
	return "lsp"
}

// Serve runs the language server on stdin/stdout until the client exits,
// stdin closes or ctx is done.
func (a *LSPAdapter) Serve(ctx context.Context, sink Sink) error {
	a.mu.Lock()
	a.sink = sink
	a.mu.Unlock()

	srv := server.NewServer(&a.handler, lsName, false)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.RunStdio()
	}()

	select {
	case <-ctx.Done():
		return nil
	case <-a.exited:
		return nil
	case err := <-errCh:
		if err != nil {
			return &AdapterError{Transport: "lsp", Message: "language server stopped", Err: err}
		}
		return nil
	}
}

func (a *LSPAdapter) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	a.notifyMu.Lock()
	a.notify = context.Notify
	a.notifyMu.Unlock()

	if params.ClientInfo != nil {
		a.logger.Info("language client connected", "client", params.ClientInfo.Name)
	}

	capabilities := a.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindNone
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &a.version,
		},
	}, nil
}

func (a *LSPAdapter) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (a *LSPAdapter) shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (a *LSPAdapter) exit(context *glsp.Context) error {
	a.exitOnce.Do(func() { close(a.exited) })
	return nil
}

func (a *LSPAdapter) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (a *LSPAdapter) textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.open.Add(string(params.TextDocument.URI))
	if a.sink != nil {
		a.sink.DocumentOpened(a.snapshotLocked())
	}
	return nil
}

func (a *LSPAdapter) textDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.open, string(params.TextDocument.URI))
	if a.sink != nil {
		a.sink.DocumentClosed(a.snapshotLocked())
	}
	return nil
}

func (a *LSPAdapter) snapshotLocked() tracker.Snapshot {
	docs := a.open.Sorted()
	return tracker.Snapshot{
		Visible:      docs,
		VisibleCount: len(docs),
		Known:        docs,
	}
}

// Notifier returns a notifier that sends window/showMessage to the client.
func (a *LSPAdapter) Notifier() notify.Notifier {
	return lspNotifier{a}
}

type lspNotifier struct {
	a *LSPAdapter
}

func (n lspNotifier) Notify(key, summary, body string, level notify.Level) {
	n.a.notifyMu.RLock()
	notifyFunc := n.a.notify
	n.a.notifyMu.RUnlock()
	if notifyFunc == nil {
		n.a.logger.Debug("editor message dropped: client not initialized", "key", key)
		return
	}

	msgType := protocol.MessageTypeWarning
	switch level {
	case notify.LevelInfo:
		msgType = protocol.MessageTypeInfo
	case notify.LevelError:
		msgType = protocol.MessageTypeError
	}

	notifyFunc("window/showMessage", protocol.ShowMessageParams{
		Type:    msgType,
		Message: summary + ": " + body,
	})
	notifyFunc("window/logMessage", protocol.LogMessageParams{
		Type:    msgType,
		Message: "[" + key + "] " + body,
	})
}
