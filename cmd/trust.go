package cmd

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"trustpack/system"
)

const defaultAnchorName = "aire-intermediate"

var requireSudo = system.RequireSudo

func TrustInstall(cCtx *cli.Context) error {
	if err := requireSudo(); err != nil {
		return err
	}

	l, err := getLocalSystem()
	if err != nil {
		return err
	}

	dest, err := l.InstallAnchor(cCtx.String("cert"), cCtx.String("name"))
	if err != nil {
		return err
	}
	pterm.Success.Println("Trust anchor installed to " + dest)
	return nil
}
