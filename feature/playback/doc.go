// Package playback is the thin state-translation shim between the player
// and the host's media session. It maps an enumerated playback state to a
// target session state and dispatches inbound transport commands to a
// pluggable handler. There is no diffing or retry logic here; a malformed
// command is a programming error and fails fast.
package playback
