package cmd

import (
	"fmt"
	"trustpack/trust"

	"github.com/urfave/cli/v2"
)

func Env(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}
	sb, err := systemBundle(cCtx, m)
	if err != nil {
		return err
	}
	format, err := trust.ParseFormat(stringOr(cCtx, "format", m.EnvFormat))
	if err != nil {
		return err
	}

	env := &trust.Env{
		SystemBundle:   sb,
		ComposedBundle: stringOr(cCtx, "bundle", m.Output),
	}

	if out := stringOr(cCtx, "output", m.EnvFile); out != "" {
		return env.WriteFile(out, format)
	}

	contents, err := env.Render(format)
	if err != nil {
		return err
	}
	fmt.Fprint(cCtx.App.Writer, contents)
	return nil
}
