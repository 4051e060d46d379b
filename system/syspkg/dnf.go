package syspkg

import (
	"fmt"
	"log/slog"
	"strings"
	"trustpack/errors"
	"trustpack/system/command"
)

type DnfManager struct {
	binary      string
	installOpts []string
	cleanOpts   []string
}

func NewDnfManager() *DnfManager {
	return &DnfManager{
		binary:      "dnf",
		installOpts: []string{"-y", "-q", "install"},
		cleanOpts:   []string{"-y", "-q", "clean", "all"},
	}
}

func (m *DnfManager) GetBin() string {
	return m.binary
}

func (m *DnfManager) Install(list *PackageList) error {
	if list == nil || len(list.Packages) == 0 {
		return nil
	}

	slog.Info("Installing packages: " + strings.Join(list.Packages, ", "))
	args := append(append([]string{}, m.installOpts...), list.Packages...)

	cmd := command.NewShellCommand(m.binary, args, nil, true)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(errors.SystemPackageInstallErrorTpl, err)
	}

	return nil
}

func (m *DnfManager) Update() error {
	slog.Debug("No update command required for dnf")
	return nil
}

func (m *DnfManager) Clean() error {
	slog.Info("Cleaning up dnf")

	cmd := command.NewShellCommand(m.binary, m.cleanOpts, nil, true)
	if err := cmd.Run(); err != nil {
		slog.Error("dnf clean step failed: " + err.Error())
		return fmt.Errorf("dnf clean failed: %w", err)
	}

	return nil
}
