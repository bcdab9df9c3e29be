// Package metrics exposes Prometheus instrumentation: discovery latency,
// mode activations, overlay delta sizes, and pointer actions. A Registry
// also serves the /metrics HTTP endpoint when enabled in config.
package metrics
