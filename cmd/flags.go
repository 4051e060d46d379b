package cmd

import (
	"github.com/urfave/cli/v2"
	"trustpack/trust"
)

const categoryInputs = "Inputs: "

func systemBundleFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "system-bundle",
		Aliases:     []string{"s"},
		Usage:       "Path to the base OS CA bundle",
		DefaultText: "$" + trust.SSLCertFileEnv + " or the distribution bundle",
		Category:    categoryInputs,
	}
}

func intermediateFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "intermediate",
		Aliases:  []string{"i"},
		Usage:    "Path to the intermediate CA certificate (PEM)",
		Category: categoryInputs,
	}
}

func outputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   usage,
	}
}

func bundleFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "bundle",
		Aliases: []string{"b"},
		Usage:   usage,
		EnvVars: []string{trust.BundleEnv},
	}
}

func strictFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "strict",
		Usage: "Validate every certificate (type, parse, expiry, single CA intermediate) before writing",
	}
}

func forceFlag(usage string) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   usage,
	}
}

func pathFlag(usage, defaultText string) *cli.StringFlag {
	f := &cli.StringFlag{
		Name:  "path",
		Usage: usage,
	}
	if defaultText != "" {
		f.DefaultText = defaultText
	}

	return f
}

// stringOr returns the flag value when it was given, otherwise fallback.
func stringOr(cCtx *cli.Context, name, fallback string) string {
	if cCtx.IsSet(name) {
		return cCtx.String(name)
	}
	return fallback
}

func boolOr(cCtx *cli.Context, name string, fallback bool) bool {
	if cCtx.IsSet(name) {
		return cCtx.Bool(name)
	}
	return fallback
}
