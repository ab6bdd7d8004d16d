// Package metrics exposes library call statistics as Prometheus metrics and
// reads runtime memory statistics for the dashboard.
package metrics
