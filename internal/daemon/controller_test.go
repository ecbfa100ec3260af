package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pipecue/internal/audio"
	"github.com/jmylchreest/pipecue/internal/config"
	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

type recordingPlayer struct {
	cues []tracker.Cue
}

func (p *recordingPlayer) Play(cue tracker.Cue) {
	p.cues = append(p.cues, cue)
}

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
	keys []string
}

func (f *fakeNotifier) Notify(key, summary, body string, level notify.Level) {
	f.keys = append(f.keys, key)
}

func lookPathOf(names ...string) audio.LookPathFunc {
	return func(file string) (string, error) {
		for _, n := range names {
			if n == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func snap(visible []string, count int, known []string) tracker.Snapshot {
	return tracker.Snapshot{Visible: visible, VisibleCount: count, Known: known}
}

func TestController_Events(t *testing.T) {
	player := &recordingPlayer{}
	c := NewController(player, snap(nil, 0, nil), nil)

	c.DocumentOpened(snap([]string{"a"}, 1, []string{"a"}))
	c.DocumentOpened(snap([]string{"a", "b"}, 2, []string{"a", "b"}))
	c.DocumentOpened(snap([]string{"a"}, 2, []string{"a", "b"})) // refocus
	c.DocumentClosed(snap([]string{"a"}, 1, []string{"a"}))
	c.DocumentClosed(snap([]string{"a"}, 1, []string{"a"}))

	assert.Equal(t, []tracker.Cue{
		tracker.CueMetal,
		tracker.CueMetal,
		tracker.CueNone,
		tracker.CueGlass,
		tracker.CueNone,
	}, player.cues)
	assert.Equal(t, []string{"a"}, c.Tracked())
}

func TestController_SyncSeedsCloseComparison(t *testing.T) {
	player := &recordingPlayer{}
	c := NewController(player, snap(nil, 0, nil), nil)

	c.Sync(snap([]string{"a", "b"}, 2, []string{"a", "b"}))
	c.DocumentClosed(snap([]string{"a"}, 1, []string{"a"}))

	assert.Empty(t, c.Tracked())
	assert.Equal(t, []tracker.Cue{tracker.CueGlass}, player.cues)
}

func TestActivate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{audio.MetalPipe, audio.GlassPipe} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("mp3"), 0644))
	}

	cfg := config.DefaultConfig()
	cfg.Assets.Dir = dir
	launcher := &fakeLauncher{}

	c, d, err := Activate(Options{
		Config:   cfg,
		GOOS:     "darwin",
		LookPath: lookPathOf("afplay"),
		Launcher: launcher,
		Notifier: &fakeNotifier{},
	})
	require.NoError(t, err)
	assert.Equal(t, "afplay", d.Player().Name)

	c.DocumentOpened(snap([]string{"a"}, 1, []string{"a"}))

	require.Len(t, launcher.launched, 1)
	assert.Equal(t, []string{"afplay", filepath.Join(dir, audio.MetalPipe)}, launcher.launched[0])
}

func TestActivate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		lookup audio.LookPathFunc
		want   error
	}{
		{"no player", "linux", lookPathOf(), audio.ErrNoPlayerFound},
		{"unsupported platform", "plan9", lookPathOf("ffplay"), audio.ErrUnsupportedPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d, err := Activate(Options{GOOS: tt.goos, LookPath: tt.lookup})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, c)
			assert.Nil(t, d)
		})
	}
}

func TestActivate_PlaybackFailureIsReported(t *testing.T) {
	n := &fakeNotifier{}
	cfg := config.DefaultConfig()
	cfg.Assets.Dir = t.TempDir()

	c, _, err := Activate(Options{
		Config:   cfg,
		GOOS:     "darwin",
		LookPath: lookPathOf("afplay"),
		Launcher: &fakeLauncher{},
		Notifier: n,
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		c.DocumentOpened(snap([]string{"a"}, 1, []string{"a"}))
	})
	assert.Equal(t, []string{"playback-metal"}, n.keys)
}
