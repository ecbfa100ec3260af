package daemon

import (
	"runtime"

	"github.com/jmylchreest/pipecue/internal/adapter/output"
	"github.com/jmylchreest/pipecue/internal/audio"
	"github.com/jmylchreest/pipecue/internal/config"
	"github.com/jmylchreest/pipecue/internal/tracker"
)

// Diagnose reports the player and assets Activate would use, without
// failing on the first problem.
func Diagnose(opts Options) *output.Report {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	assets := audio.NewAssets(opts.Config.Assets.Dir)
	r := &output.Report{
		OS:       opts.GOOS,
		Family:   audio.FamilyFor(opts.GOOS).String(),
		AssetDir: assets.Dir(),
	}

	player, err := audio.ChoosePlayerFor(opts.GOOS, opts.LookPath)
	if err != nil {
		r.PlayerError = err.Error()
	} else {
		r.Player = player.Name
		r.PlayerPath = player.Path
	}

	for _, cue := range []tracker.Cue{tracker.CueMetal, tracker.CueGlass} {
		a := output.AssetReport{Cue: cue.String()}

		path, err := assets.Path(cue)
		a.Path = path
		if err != nil {
			a.Error = err.Error()
			r.Assets = append(r.Assets, a)
			continue
		}

		if player != nil && r.Invocation == "" {
			r.Invocation = player.Invocation(path)
		}

		info, err := audio.Probe(path)
		if err != nil {
			a.Error = err.Error()
		} else {
			a.Size = info.Size
			a.Duration = info.Duration
		}
		r.Assets = append(r.Assets, a)
	}

	return r
}
