package daemon

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/jmylchreest/pipecue/internal/audio"
	"github.com/jmylchreest/pipecue/internal/config"
	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

// CuePlayer plays a cue without blocking.
type CuePlayer interface {
	Play(cue tracker.Cue)
}

// Controller turns editor events into cues. It holds all per-activation
// state and must receive events from one goroutine at a time.
type Controller struct {
	logger  *slog.Logger
	tracker *tracker.Tracker
	player  CuePlayer
}

// NewController creates a controller seeded with the editor's layout at
// activation.
func NewController(player CuePlayer, initial tracker.Snapshot, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:  logger,
		tracker: tracker.New(initial),
		player:  player,
	}
}

// DocumentOpened plays the metal cue when a new document became visible.
func (c *Controller) DocumentOpened(snap tracker.Snapshot) {
	cue := c.tracker.Opened(snap)
	c.logger.Debug("document opened",
		"visible", len(snap.Visible),
		"visible_count", snap.VisibleCount,
		"tracked", len(c.tracker.Tracked()),
		"cue", cue.String(),
	)
	c.player.Play(cue)
}

// DocumentClosed plays the glass cue when the visible count dropped.
func (c *Controller) DocumentClosed(snap tracker.Snapshot) {
	cue := c.tracker.Closed(snap)
	c.logger.Debug("document closed",
		"visible_count", snap.VisibleCount,
		"known", len(snap.Known),
		"tracked", len(c.tracker.Tracked()),
		"cue", cue.String(),
	)
	c.player.Play(cue)
}

// Sync records the editor layout without playing anything.
func (c *Controller) Sync(snap tracker.Snapshot) {
	c.tracker.Sync(snap)
	c.logger.Debug("layout synced", "visible_count", snap.VisibleCount)
}

// Tracked returns the tracked document identifiers.
func (c *Controller) Tracked() []string {
	return c.tracker.Tracked()
}

// Options configures Activate. Zero values use the running system.
type Options struct {
	Config   *config.Config
	GOOS     string
	LookPath audio.LookPathFunc
	Launcher audio.Launcher
	Notifier notify.Notifier
	Initial  tracker.Snapshot
	Logger   *slog.Logger
}

// Activate chooses the audio player and builds the controller. A missing
// player or an unsupported platform fails activation: no cue could ever play.
func Activate(opts Options) (*Controller, *audio.Dispatcher, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	player, err := audio.ChoosePlayerFor(opts.GOOS, opts.LookPath)
	if err != nil {
		return nil, nil, fmt.Errorf("activation failed: %w", err)
	}

	assets := audio.NewAssets(opts.Config.Assets.Dir)
	dispatcher := audio.NewDispatcher(player, assets, opts.Launcher, opts.Notifier, opts.Logger)

	opts.Logger.Info("activated",
		"family", player.Family.String(),
		"player", player.Name,
		"player_path", player.Path,
		"assets", assets.Dir(),
	)

	return NewController(dispatcher, opts.Initial, opts.Logger), dispatcher, nil
}
