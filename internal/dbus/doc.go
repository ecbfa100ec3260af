// Package dbus exposes pipecue on the session bus.
// Editors that cannot keep a pipe open report document events by calling
// DocumentOpened, DocumentClosed and Sync on the io.github.jmylchreest.PipeCue
// interface, and listen for the Notification signal to show pipecue's own
// errors to the user. It is not built on Windows.
package dbus
