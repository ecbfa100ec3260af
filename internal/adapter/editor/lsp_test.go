package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jmylchreest/pipecue/internal/notify"
)

type sentMessage struct {
	method string
	params any
}

func newTestLSP(t *testing.T) (*LSPAdapter, *recordingSink, *[]sentMessage) {
	t.Helper()
	a := NewLSPAdapter("test", nil)
	sink := &recordingSink{}
	a.sink = sink

	var sent []sentMessage
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, sentMessage{method, params})
		},
	}
	_, err := a.initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)
	return a, sink, &sent
}

func didOpen(t *testing.T, a *LSPAdapter, uri string) {
	t.Helper()
	require.NoError(t, a.textDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.DocumentUri(uri), LanguageID: "go", Text: ""},
	}))
}

func didClose(t *testing.T, a *LSPAdapter, uri string) {
	t.Helper()
	require.NoError(t, a.textDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentUri(uri)},
	}))
}

func TestLSPAdapter_InitializeAdvertisesOpenClose(t *testing.T) {
	a := NewLSPAdapter("1.2.3", nil)
	result, err := a.initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, res.ServerInfo)
	assert.Equal(t, "pipecue", res.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *res.ServerInfo.Version)

	sync, ok := res.Capabilities.TextDocumentSync.(protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.True(t, *sync.OpenClose)
}

func TestLSPAdapter_OpenAndCloseSnapshots(t *testing.T) {
	a, sink, _ := newTestLSP(t)

	didOpen(t, a, "file:///b.go")
	didOpen(t, a, "file:///a.go")
	didClose(t, a, "file:///b.go")

	require.Len(t, sink.events, 3)

	assert.Equal(t, "opened", sink.events[1].kind)
	assert.Equal(t, []string{"file:///a.go", "file:///b.go"}, sink.events[1].snap.Visible)
	assert.Equal(t, 2, sink.events[1].snap.VisibleCount)

	closed := sink.events[2]
	assert.Equal(t, "closed", closed.kind)
	assert.Equal(t, 1, closed.snap.VisibleCount)
	assert.Equal(t, []string{"file:///a.go"}, closed.snap.Known)
}

func TestLSPAdapter_NotifierSendsShowMessage(t *testing.T) {
	a, _, sent := newTestLSP(t)

	a.Notifier().Notify("playback-metal", "Cue Playback Failed", "exec: ffplay: not found", notify.LevelError)

	require.Len(t, *sent, 2)
	assert.Equal(t, "window/showMessage", (*sent)[0].method)
	show, ok := (*sent)[0].params.(protocol.ShowMessageParams)
	require.True(t, ok)
	assert.Equal(t, protocol.MessageTypeError, show.Type)
	assert.Equal(t, "Cue Playback Failed: exec: ffplay: not found", show.Message)

	assert.Equal(t, "window/logMessage", (*sent)[1].method)
}

func TestLSPAdapter_NotifierBeforeInitialize(t *testing.T) {
	a := NewLSPAdapter("test", nil)
	assert.NotPanics(t, func() {
		a.Notifier().Notify("k", "s", "b", notify.LevelWarning)
	})
}

func TestLSPAdapter_ExitIsIdempotent(t *testing.T) {
	a := NewLSPAdapter("test", nil)
	require.NoError(t, a.exit(&glsp.Context{}))
	require.NoError(t, a.exit(&glsp.Context{}))

	select {
	case <-a.exited:
	default:
		t.Fatal("exit did not signal")
	}
}
