package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	key, summary, body string
	level              Level
}

type recorder struct {
	calls []recorded
}

func (r *recorder) Notify(key, summary, body string, level Level) {
	r.calls = append(r.calls, recorded{key, summary, body, level})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "unknown", Level(9).String())
}

func TestLog_Notify(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewLog(logger).Notify("playback-glass", "Cue Playback Failed", "boom", LevelError)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "Cue Playback Failed")
	assert.Contains(t, out, "key=playback-glass")
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := NewMulti(a, nil, b)

	m.Notify("k", "s", "b", LevelWarning)

	require.Len(t, a.calls, 1)
	require.Len(t, b.calls, 1)
	assert.Equal(t, recorded{"k", "s", "b", LevelWarning}, a.calls[0])

	m.Set(b)
	m.Notify("k2", "s", "b", LevelInfo)
	assert.Len(t, a.calls, 1)
	assert.Len(t, b.calls, 2)
}
