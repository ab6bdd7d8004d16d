// Package server exposes the Prometheus endpoint of a running host. It is
// started only when a metrics address is configured and never writes to the
// host output.
package server
