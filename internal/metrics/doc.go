// Package metrics exposes device activity as Prometheus metrics and samples
// runtime memory statistics around benchmark sweeps.
//
// A Recorder owns its own registry; callers mount Handler wherever they
// serve metrics and pass the Recorder to fibdev.WithObserver.
package metrics
