// Package audio plays the document cues through an external command-line
// player. The player is chosen once per process from a per-OS table of
// candidates and each cue is launched as a detached process; playback
// failures are reported and never returned to the caller.
package audio
