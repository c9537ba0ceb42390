// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Day pass throughput and failure counts per ticker
//   - Pass durations
//   - Result cache rows written and flush errors
package metrics
