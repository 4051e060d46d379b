package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

var ErrUnhealthy = errors.New("unhealthy")

type Status int

const (
	StatusStarting Status = iota
	StatusHealthy
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Monitor waits out the start period and then probes every interval. It
// returns ErrUnhealthy once Retries consecutive probes have failed; a success
// resets the count. onChange, if set, is called on every status transition.
func Monitor(ctx context.Context, p Policy, probe ProbeFunc, onChange func(Status)) error {
	if err := p.Validate(); err != nil {
		return err
	}

	status := StatusStarting
	setStatus := func(s Status) {
		if s == status {
			return
		}
		slog.Info("Health status changed from " + status.String() + " to " + s.String())
		status = s
		if onChange != nil {
			onChange(s)
		}
	}

	if err := wait(ctx, p.StartPeriod); err != nil {
		return err
	}

	failures := 0
	for {
		probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
		err := probe(probeCtx)
		cancel()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			failures++
			slog.Warn("Health check failed (" + strconv.Itoa(failures) + "/" + strconv.Itoa(p.Retries) + "): " + err.Error())
			if failures >= p.Retries {
				setStatus(StatusUnhealthy)
				return fmt.Errorf("%w after %d consecutive failures: %w", ErrUnhealthy, failures, err)
			}
		} else {
			failures = 0
			setStatus(StatusHealthy)
		}

		if err := wait(ctx, p.Interval); err != nil {
			return err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
