// Package tui implements an interactive terminal explorer for a Fibonacci
// device. It holds one session for its lifetime and lets the user move the
// cursor, write terms and watch how long each computation took.
package tui
