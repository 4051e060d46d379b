package cmd

import (
	"github.com/urfave/cli/v2"
	"trustpack/tools/intermediate"
)

func IntermediateFetch(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}

	mgr := intermediate.NewManager(
		stringOr(cCtx, "url", m.Intermediate.URL),
		stringOr(cCtx, "path", m.Intermediate.Path),
		cCtx.Bool("force"),
	)
	return mgr.Install()
}

func IntermediateRemove(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}

	mgr := intermediate.NewManager("", stringOr(cCtx, "path", m.Intermediate.Path), false)
	return mgr.Remove()
}
