// Package status exposes the result of the most recent reconciliation
// pass. The engine publishes a report at the end of every pass and the
// HTTP endpoint serves the last one along with its timestamp, so the
// host can tell whether the library has converged without tailing logs.
package status
