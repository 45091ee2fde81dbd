// Package ui holds the terminal color themes shared by the shell, the sweep
// report and the device explorer.
package ui
