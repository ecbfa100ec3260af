package audio

import (
	"errors"
	"strings"

	"github.com/jmylchreest/pipecue/internal/tracker"
)

var (
	// ErrNoPlayerFound matches *NoPlayerFoundError.
	ErrNoPlayerFound = errors.New("no audio player found")
	// ErrUnsupportedPlatform matches *UnsupportedPlatformError.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// NoPlayerFoundError is returned when none of the candidates for the OS
// family resolve on the executable search path.
type NoPlayerFoundError struct {
	Family     Family
	Candidates []string
}

func (e *NoPlayerFoundError) Error() string {
	return "no audio player found for " + e.Family.String() + " (tried " + strings.Join(e.Candidates, ", ") + ")"
}

func (e *NoPlayerFoundError) Is(target error) bool {
	return target == ErrNoPlayerFound
}

// UnsupportedPlatformError is returned for an OS outside the known families.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	if e.GOOS == "" {
		return "unsupported platform"
	}
	return "unsupported platform: " + e.GOOS
}

func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// PlaybackInvocationError describes a failure to build or launch a cue after
// the player was chosen.
type PlaybackInvocationError struct {
	Cue  tracker.Cue
	Path string
	Op   string // resolve, build, launch
	Err  error
}

func (e *PlaybackInvocationError) Error() string {
	msg := "failed to " + e.Op + " " + e.Cue.String() + " cue"
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PlaybackInvocationError) Unwrap() error {
	return e.Err
}
