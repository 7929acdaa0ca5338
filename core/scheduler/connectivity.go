package scheduler

import (
	"context"
	"net"
	"time"
)

// Connectivity answers whether the network is currently usable. Jobs do
// not start while offline.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// AlwaysOnline is a Connectivity that never blocks a job. Used when no
// probe address is configured and in tests.
type AlwaysOnline struct{}

func (AlwaysOnline) Online(ctx context.Context) bool { return true }

// DialProbe checks connectivity by opening a TCP connection to a fixed
// address.
type DialProbe struct {
	Addr    string
	Timeout time.Duration
}

func (p DialProbe) Online(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// ProbeFromConfig builds the Connectivity check described by cfg.
func ProbeFromConfig(cfg Config) Connectivity {
	if cfg.ProbeAddr == "" {
		return AlwaysOnline{}
	}
	timeout := time.Duration(cfg.ProbeTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return DialProbe{Addr: cfg.ProbeAddr, Timeout: timeout}
}
