// Package schema defines the typed working copy of the printer's
// configuration document and the field registry that drives validation and
// diff construction.
//
// The working copy is a session-scoped, fully-populated replica of the
// device document: every field declared here has a value after a load, even
// when the device response omitted it (defaults fill the gaps). This is the
// counterpart to deviceapi's pointer-typed wire document, where absence is
// meaningful.
//
// Fields are addressed by dot-delimited paths ("device.wifi.ssid",
// "buttons.button2.gpio") shared by the secret tracker, the validation
// engine and the patch builder.
package schema
