package cmd

import (
	"log/slog"
	"trustpack/bundle"
	"trustpack/tools/intermediate"
	"trustpack/trust"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

// Build runs the manifest end to end: fetch the intermediate if a URL is
// configured and nothing is installed yet, compose the bundle, then write the
// environment file if one is configured.
func Build(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}

	if m.Intermediate.URL != "" {
		mgr := intermediate.NewManager(m.Intermediate.URL, m.Intermediate.Path, false)
		installed, err := mgr.Installed()
		if err != nil {
			return err
		}
		if installed {
			slog.Info("Intermediate certificate already present at " + mgr.InstallPath + ", skipping download")
		} else if err := mgr.Install(); err != nil {
			return err
		}
	}

	sb, err := systemBundle(cCtx, m)
	if err != nil {
		return err
	}

	c := bundle.NewComposer(sb, m.Intermediate.Path, m.Output)
	c.Strict = m.Strict
	res, err := c.Compose()
	if err != nil {
		return err
	}

	if m.EnvFile != "" {
		format, err := trust.ParseFormat(m.EnvFormat)
		if err != nil {
			return err
		}
		env := &trust.Env{SystemBundle: sb, ComposedBundle: res.OutputPath}
		if err := env.WriteFile(m.EnvFile, format); err != nil {
			return err
		}
	}

	pterm.Success.Println("Build complete, " + trust.BundleEnv + "=" + res.OutputPath)
	return nil
}
