// Package checks implements the individual integrity checks over the
// download directory and its records.
package checks
