// Package server holds the HTTP server configuration consumed by the
// daemon's Fiber app: the listen port and the optional API key protecting
// the management endpoints.
package server
