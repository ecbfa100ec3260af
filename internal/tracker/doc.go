// Package tracker decides when a document cue should fire.
//
// It keeps the set of document identifiers believed to be open and the last
// visible-editor count reported by the editor. The decision functions are pure:
// they take the current host snapshot and return the updated set and the cue
// to play, leaving playback to the caller.
package tracker
