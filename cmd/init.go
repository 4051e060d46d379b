package cmd

import (
	"github.com/urfave/cli/v2"
	"trustpack/tools/container"
)

func Init(cCtx *cli.Context) error {
	if err := requireSudo(); err != nil {
		return err
	}

	l, err := getLocalSystem()
	if err != nil {
		return err
	}

	return container.Bootstrap(l)
}
