// Package terminal owns the raw-mode TTY: lifecycle (raw mode, alternate screen,
// cursor and auto-wrap), size queries, SIGWINCH delivery, and decoding of the raw
// input byte stream into key events.
//
// Frame content is written through Terminal's io.Writer; this package emits no
// drawing sequences of its own beyond clear and reset.
package terminal
