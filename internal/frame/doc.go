// Package frame drives a split tree one frame at a time.
//
// A [Driver] owns the tree root, the time base and the geometry buffers.
// Each call to [Driver.Step] rebuilds the buffers from scratch by emitting
// the tree at the given time, replaces the root when it expires, and
// recreates a root whenever none is left.
//
// Presentation is delegated to a [Backend]; [Run] is the loop that ties a
// driver, a clock and a backend together until the context is cancelled or
// the backend closes.
//
// # Thread Safety
//
// Driver instances are NOT thread-safe. [Ensemble] runs independent drivers
// in parallel, one per seed.
package frame
