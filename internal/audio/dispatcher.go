package audio

import (
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

// Launcher starts a player process without waiting for it.
type Launcher interface {
	Launch(argv []string) error
}

// Dispatcher plays cues through the chosen player. Play never blocks on the
// player and never returns an error.
type Dispatcher struct {
	logger   *slog.Logger
	player   *Player
	assets   *Assets
	launcher Launcher
	notifier notify.Notifier
}

// NewDispatcher creates a dispatcher. A nil launcher starts real processes;
// a nil notifier only logs.
func NewDispatcher(player *Player, assets *Assets, launcher Launcher, notifier notify.Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if launcher == nil {
		launcher = NewProcessLauncher(logger)
	}
	if notifier == nil {
		notifier = notify.NewLog(logger)
	}

	return &Dispatcher{
		logger:   logger,
		player:   player,
		assets:   assets,
		launcher: launcher,
		notifier: notifier,
	}
}

// Player returns the chosen player.
func (d *Dispatcher) Player() *Player {
	return d.player
}

// Play launches the sound for cue. CueNone is ignored.
func (d *Dispatcher) Play(cue tracker.Cue) {
	if cue == tracker.CueNone {
		return
	}

	id := dispatchID()

	path, err := d.assets.Path(cue)
	if err != nil {
		d.fail(id, &PlaybackInvocationError{Cue: cue, Path: path, Op: "resolve", Err: err})
		return
	}

	argv, err := d.player.Command(path)
	if err != nil {
		d.fail(id, &PlaybackInvocationError{Cue: cue, Path: path, Op: "build", Err: err})
		return
	}

	if err := d.launcher.Launch(argv); err != nil {
		d.fail(id, &PlaybackInvocationError{Cue: cue, Path: path, Op: "launch", Err: err})
		return
	}

	d.logger.Debug("cue dispatched", "id", id, "cue", cue.String(), "player", d.player.Name, "path", path)
}

func (d *Dispatcher) fail(id string, err *PlaybackInvocationError) {
	d.logger.Error("cue playback failed", "id", id, "cue", err.Cue.String(), "op", err.Op, "error", err)
	d.notifier.Notify("playback-"+err.Cue.String(), "Cue Playback Failed", err.Error(), notify.LevelError)
}

// dispatchID returns a ULID used to correlate the log lines of one dispatch.
func dispatchID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
