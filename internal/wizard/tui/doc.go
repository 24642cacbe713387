// Package tui implements the interactive settings console as a Bubble Tea
// application with two screens:
//
//   - Discovery: scans the network for Scribe printers over mDNS, renders
//     each as a selectable card, and offers manual IP entry as a fallback.
//   - Dashboard: a full settings editor bound to a session. Every field is a
//     navigable row; editing happens inline (text input, option selector, pin
//     catalog, or WiFi network picker) rather than in modal dialogs.
//
// The dashboard never talks to the printer directly. All reads and writes go
// through the session, which owns the working copy, tracks secret edits, and
// builds the minimal save payload. Saving with changed WiFi credentials shows
// a warning panel first, since wrong credentials take the printer offline.
//
// Screens share a consistent full-screen frame via RenderApplicationContainer
// (header with app name and version, bordered content, help footer).
package tui
