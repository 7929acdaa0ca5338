package entitlement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gate answers whether offline downloads are allowed for this
// installation. A negative answer is not an error; reconciliation simply
// no-ops.
type Gate interface {
	Check(ctx context.Context) (bool, error)
}

// StaticGate always returns the configured answer. This is the default
// for self-hosted deployments with no subscription service.
type StaticGate struct {
	Entitled bool
}

func (g StaticGate) Check(ctx context.Context) (bool, error) {
	return g.Entitled, nil
}

// RemoteGate queries an entitlement endpoint. A transport or decode
// failure is a gate error, which callers treat as transient.
type RemoteGate struct {
	url    string
	client *http.Client
}

// NewRemoteGate creates a gate against the given endpoint.
func NewRemoteGate(url string, timeout time.Duration) *RemoteGate {
	return &RemoteGate{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *RemoteGate) Check(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return false, fmt.Errorf("entitlement request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("entitlement check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("entitlement check: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Entitled bool `json:"entitled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("entitlement response: %w", err)
	}
	return body.Entitled, nil
}

// FromConfig builds the gate described by cfg.
func FromConfig(cfg Config) (Gate, error) {
	switch cfg.Mode {
	case "", "static":
		return StaticGate{Entitled: cfg.Entitled}, nil
	case "remote":
		if cfg.URL == "" {
			return nil, fmt.Errorf("entitlement: remote mode requires a url")
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return NewRemoteGate(cfg.URL, timeout), nil
	default:
		return nil, fmt.Errorf("entitlement: unsupported mode %q", cfg.Mode)
	}
}
