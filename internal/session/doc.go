// Package session implements the configuration editing session: loading the
// device document into a working copy, tracking operator edits, preventing
// GPIO pin conflicts, coordinating WiFi scans, validating the result, and
// building the minimal save payload.
//
// A Session is constructed explicitly at startup and handed to whichever
// surface (wizard, CLI command) needs it. The working copy, secret state and
// scan state are exclusively owned by the session; all mutation goes through
// session methods. Everything is single-goroutine: busy flags make a second
// load, save or scan while one is outstanding a no-op instead of a race.
package session
