package cmd

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"log/slog"
	"trustpack/config"
	"trustpack/health"
	"trustpack/tools/intermediate"
	"trustpack/trust"
)

func Cli() *cli.App {
	defaultPolicy := health.DefaultPolicy()

	app := &cli.App{
		Name:        "trustpack",
		Usage:       "CA bundle composer",
		Description: "Compose the OS trust store with an organisation intermediate CA and hand the result to the application",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug mode",
				Action: func(c *cli.Context, debugMode bool) error {
					if debugMode {
						slog.Info("Debug mode enabled")
						pterm.DefaultLogger.Level = pterm.LogLevelDebug
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the build manifest",
				DefaultText: config.DefaultFile,
				EnvVars:     []string{"TRUSTPACK_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Install ca-certificates and refresh the OS trust store",
				Action: Init,
			},
			{
				Name:   "build",
				Usage:  "Fetch the intermediate, compose the bundle and write the environment file from the manifest",
				Action: Build,
			},
			{
				Name:     "bundle",
				Usage:    "Compose or examine CA bundles",
				Category: "bundle",
				Subcommands: []*cli.Command{
					{
						Name:  "compose",
						Usage: "Write the system bundle followed by the intermediate to the output path",
						Flags: []cli.Flag{
							systemBundleFlag(),
							intermediateFlag(),
							outputFlag("Path to write the composed bundle to"),
							strictFlag(),
						},
						Action: BundleCompose,
					},
					{
						Name:  "inspect",
						Usage: "List the certificates in a bundle",
						Flags: []cli.Flag{
							bundleFlag("Path to the bundle to inspect"),
						},
						Action: BundleInspect,
					},
					{
						Name:  "verify",
						Usage: "Check that every block of a bundle is a valid, unexpired certificate",
						Flags: []cli.Flag{
							bundleFlag("Path to the bundle to verify"),
						},
						Action: BundleVerify,
					},
				},
			},
			{
				Name:     "intermediate",
				Usage:    "Download or remove the intermediate CA certificate",
				Category: "bundle",
				Subcommands: []*cli.Command{
					{
						Name:  "fetch",
						Usage: "Download the intermediate certificate (PEM or DER)",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "url",
								Usage: "URL to download the intermediate certificate from",
							},
							pathFlag("Path to install the intermediate certificate to", intermediate.DefaultInstallPath),
							forceFlag("Replace the intermediate certificate if it is already installed"),
						},
						Action: IntermediateFetch,
					},
					{
						Name:  "remove",
						Usage: "Remove the installed intermediate certificate",
						Flags: []cli.Flag{
							pathFlag("Path of the installed intermediate certificate", intermediate.DefaultInstallPath),
						},
						Action: IntermediateRemove,
					},
				},
			},
			{
				Name:     "env",
				Usage:    "Print or write the " + trust.SSLCertFileEnv + " and " + trust.BundleEnv + " variables",
				Category: "runtime",
				Flags: []cli.Flag{
					systemBundleFlag(),
					&cli.StringFlag{
						Name:    "bundle",
						Aliases: []string{"b"},
						Usage:   "Path of the composed bundle",
					},
					&cli.StringFlag{
						Name:        "format",
						Usage:       "Output format: shell, dotenv or docker",
						DefaultText: string(trust.FormatShell),
					},
					outputFlag("Write to this file instead of stdout"),
				},
				Action: Env,
			},
			{
				Name:     "trust",
				Usage:    "Manage OS trust anchors",
				Category: "runtime",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Add a certificate to the OS trust store and regenerate it",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "cert",
								Usage:    "Path to the PEM certificate to trust",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "name",
								Usage: "File name for the anchor, without extension",
								Value: defaultAnchorName,
							},
						},
						Action: TrustInstall,
					},
				},
			},
			{
				Name:     "healthcheck",
				Usage:    "Probe the application health endpoint",
				Category: "runtime",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "url",
						Usage:       "Health endpoint to probe",
						DefaultText: health.DefaultURL,
					},
					&cli.DurationFlag{
						Name:        "timeout",
						Usage:       "Time allowed for one probe",
						DefaultText: defaultPolicy.Timeout.String(),
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Keep probing until the endpoint is declared unhealthy",
					},
					&cli.DurationFlag{
						Name:        "interval",
						Usage:       "Time between probes with --watch",
						DefaultText: defaultPolicy.Interval.String(),
					},
					&cli.DurationFlag{
						Name:        "start-period",
						Usage:       "Grace period before the first probe with --watch",
						DefaultText: defaultPolicy.StartPeriod.String(),
					},
					&cli.IntFlag{
						Name:        "retries",
						Usage:       "Consecutive failures before the endpoint is unhealthy",
						DefaultText: "3",
					},
				},
				Action: HealthCheck,
			},
		},
	}
	return app
}
