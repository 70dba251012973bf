// Package metrics records generation metrics.
//
// Components take a Recorder and default to NoopRecorder, so callers never
// check for nil. The watch command swaps in a PrometheusRecorder when
// monitoring.metrics.enabled is set and serves it with HTTPHandler.
package metrics
