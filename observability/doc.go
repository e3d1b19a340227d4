// Package observability provides OpenTelemetry tracing and metrics for
// pipeline spawns. The process package emits a span per spawn and records
// spawn counters when a global Metrics is installed; with no provider
// initialized, both are no-ops.
package observability
