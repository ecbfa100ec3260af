package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pipecue/internal/daemon"
	"github.com/jmylchreest/pipecue/internal/notify"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

var playCmd = &cobra.Command{
	Use:       "play metal|glass",
	Short:     "Play one cue",
	Long:      `Play a single cue through the same player and assets serve would use.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"metal", "glass"},
	RunE:      runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cue, ok := tracker.ParseCue(args[0])
	if !ok || cue == tracker.CueNone {
		return fmt.Errorf("unknown cue %q (want metal or glass)", args[0])
	}

	failures := &failureNotifier{}
	_, dispatcher, err := daemon.Activate(daemon.Options{
		Config:   cfg,
		Notifier: notify.NewMulti(notify.NewLog(logger), failures),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	dispatcher.Play(cue)
	return failures.err()
}

// failureNotifier turns playback failure notifications into an exit status.
type failureNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (f *failureNotifier) Notify(key, summary, body string, level notify.Level) {
	if level != notify.LevelError {
		return
	}
	f.mu.Lock()
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
}

func (f *failureNotifier) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		return nil
	}
	return errors.New(f.bodies[0])
}
