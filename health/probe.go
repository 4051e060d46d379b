// Package health probes the application's HTTP health endpoint with the same
// policy the container runtime applies.
package health

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"trustpack/trust"
)

const DefaultURL = "http://127.0.0.1:8000/health"

type Policy struct {
	Interval    time.Duration
	Timeout     time.Duration
	StartPeriod time.Duration
	Retries     int
}

func DefaultPolicy() Policy {
	return Policy{
		Interval:    30 * time.Second,
		Timeout:     5 * time.Second,
		StartPeriod: 15 * time.Second,
		Retries:     3,
	}
}

// Validate rejects policies the monitor cannot run.
func (p Policy) Validate() error {
	if p.Interval <= 0 {
		return fmt.Errorf("health check interval must be positive, got %s", p.Interval)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("health check timeout must be positive, got %s", p.Timeout)
	}
	if p.StartPeriod < 0 {
		return fmt.Errorf("health check start period must not be negative, got %s", p.StartPeriod)
	}
	if p.Retries < 1 {
		return fmt.Errorf("health check retries must be at least 1, got %d", p.Retries)
	}
	return nil
}

// ProbeFunc performs one health check. A nil error means healthy.
type ProbeFunc func(ctx context.Context) error

var newClient = func(url string, timeout time.Duration) (*http.Client, error) {
	if strings.HasPrefix(url, "https://") {
		return trust.NewHTTPClient(timeout)
	}
	return &http.Client{Timeout: timeout}, nil
}

// Probe issues GET url and succeeds iff a 2xx response arrives within timeout.
func Probe(ctx context.Context, url string, timeout time.Duration) error {
	client, err := newClient(url, timeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request for '%s': %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health check %s returned status '%s'", url, resp.Status)
	}

	slog.Debug("Health check " + url + " returned " + resp.Status)
	return nil
}

// HTTPProbe binds Probe to a url and timeout for use with Monitor.
func HTTPProbe(url string, timeout time.Duration) ProbeFunc {
	return func(ctx context.Context) error {
		return Probe(ctx, url, timeout)
	}
}
