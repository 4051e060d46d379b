package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"trustpack/health"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func healthPolicy(cCtx *cli.Context, p health.Policy) health.Policy {
	if cCtx.IsSet("interval") {
		p.Interval = cCtx.Duration("interval")
	}
	if cCtx.IsSet("timeout") {
		p.Timeout = cCtx.Duration("timeout")
	}
	if cCtx.IsSet("start-period") {
		p.StartPeriod = cCtx.Duration("start-period")
	}
	if cCtx.IsSet("retries") {
		p.Retries = cCtx.Int("retries")
	}
	return p
}

func HealthCheck(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}
	url := stringOr(cCtx, "url", m.Health.URL)
	policy := healthPolicy(cCtx, m.Health.Policy())

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cCtx.Bool("watch") {
		if err := health.Probe(ctx, url, policy.Timeout); err != nil {
			return err
		}
		pterm.Success.Println(url + " is healthy")
		return nil
	}

	err = health.Monitor(ctx, policy, health.HTTPProbe(url, policy.Timeout), func(s health.Status) {
		pterm.Info.Println(url + " is " + s.String())
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
