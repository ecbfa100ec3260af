package audio

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

type fakeLauncher struct {
	launched [][]string
	err      error
}

func (f *fakeLauncher) Launch(argv []string) error {
	if f.err != nil {
		return f.err
	}
	f.launched = append(f.launched, argv)
	return nil
}

type fakeNotifier struct {
	keys   []string
	bodies []string
	levels []notify.Level
}

func (f *fakeNotifier) Notify(key, summary, body string, level notify.Level) {
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, body)
	f.levels = append(f.levels, level)
}

func newTestDispatcher(t *testing.T, dir string, launcher Launcher) (*Dispatcher, *fakeNotifier) {
	t.Helper()
	player, err := ChoosePlayer(FamilyMac, lookPathOf("afplay"))
	require.NoError(t, err)

	n := &fakeNotifier{}
	return NewDispatcher(player, NewAssets(dir), launcher, n, slog.Default()), n
}

func TestDispatcher_PlayLaunchesPlayer(t *testing.T) {
	dir := writeAssets(t)
	launcher := &fakeLauncher{}
	d, n := newTestDispatcher(t, dir, launcher)

	d.Play(tracker.CueMetal)
	d.Play(tracker.CueGlass)

	require.Len(t, launcher.launched, 2)
	assert.Equal(t, []string{"afplay", filepath.Join(dir, MetalPipe)}, launcher.launched[0])
	assert.Equal(t, []string{"afplay", filepath.Join(dir, GlassPipe)}, launcher.launched[1])
	assert.Empty(t, n.keys)
}

func TestDispatcher_IgnoresCueNone(t *testing.T) {
	launcher := &fakeLauncher{}
	d, n := newTestDispatcher(t, writeAssets(t), launcher)

	d.Play(tracker.CueNone)

	assert.Empty(t, launcher.launched)
	assert.Empty(t, n.keys)
}

func TestDispatcher_LaunchFailureIsReported(t *testing.T) {
	launcher := &fakeLauncher{err: errors.New("exec: permission denied")}
	d, n := newTestDispatcher(t, writeAssets(t), launcher)

	require.NotPanics(t, func() {
		d.Play(tracker.CueGlass)
	})

	require.Len(t, n.keys, 1)
	assert.Equal(t, "playback-glass", n.keys[0])
	assert.Equal(t, notify.LevelError, n.levels[0])
	assert.Contains(t, n.bodies[0], "failed to launch glass cue")
	assert.Contains(t, n.bodies[0], "permission denied")
}

func TestDispatcher_MissingAssetIsReported(t *testing.T) {
	launcher := &fakeLauncher{}
	d, n := newTestDispatcher(t, t.TempDir(), launcher)

	d.Play(tracker.CueMetal)

	assert.Empty(t, launcher.launched)
	require.Len(t, n.bodies, 1)
	assert.Contains(t, n.bodies[0], "failed to resolve metal cue")
}

func TestPlaybackInvocationError(t *testing.T) {
	cause := errors.New("boom")
	err := &PlaybackInvocationError{Cue: tracker.CueMetal, Path: "/a.mp3", Op: "launch", Err: cause}

	assert.Equal(t, "failed to launch metal cue (/a.mp3): boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestProcessLauncher_EmptyCommand(t *testing.T) {
	l := NewProcessLauncher(nil)
	assert.Error(t, l.Launch(nil))
}

func TestProcessLauncher_MissingBinary(t *testing.T) {
	l := NewProcessLauncher(nil)
	assert.Error(t, l.Launch([]string{"pipecue-no-such-player-binary"}))
}
