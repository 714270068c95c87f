// Package metrics records generation metrics.
//
// The generator and page generators report events to a Recorder, which is
// NoopRecorder unless the build is configured with a metrics file. The
// Prometheus implementation is written out with WriteTextfile once the build
// is over.
package metrics
