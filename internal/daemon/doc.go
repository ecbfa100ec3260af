// Package daemon provides the main orchestration for pipecue.
// It activates the audio player, owns the tracker state for the session,
// turns editor events into cues, and hot-reloads the configuration.
package daemon
