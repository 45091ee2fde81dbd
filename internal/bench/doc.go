// Package bench drives a fibdev.Device the way an external client would.
//
// Sweep walks a range of indices, timing every write from the caller's side
// alongside the device's own measurement, and WritePlot stores the result as
// "index kernel_ns user_ns" lines ready for gnuplot. Contend races several
// concurrent opens to show the fail-fast session guard at work.
package bench
