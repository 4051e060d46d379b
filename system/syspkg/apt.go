package syspkg

import (
	"fmt"
	"github.com/spf13/afero"
	"log/slog"
	"strings"
	"trustpack/errors"
	"trustpack/system/command"
	"trustpack/system/file"
)

const aptListsPath = "/var/lib/apt/lists"

type AptManager struct {
	binary         string
	installOpts    []string
	updateOpts     []string
	autoRemoveOpts []string
	cleanOpts      []string
}

func NewAptManager() *AptManager {
	return &AptManager{
		binary:         "apt-get",
		installOpts:    []string{"install", "-y", "-q", "--no-install-recommends"},
		updateOpts:     []string{"update", "-q"},
		autoRemoveOpts: []string{"autoremove", "-y", "-q"},
		cleanOpts:      []string{"clean", "-q"},
	}
}

func (m *AptManager) GetBin() string {
	return m.binary
}

func (m *AptManager) Install(list *PackageList) error {
	if list == nil || len(list.Packages) == 0 {
		return nil
	}

	slog.Info("Installing packages: " + strings.Join(list.Packages, ", "))
	args := append(append([]string{}, m.installOpts...), list.Packages...)

	cmd := command.NewShellCommand(m.binary, args, []string{"DEBIAN_FRONTEND=noninteractive"}, true)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(errors.SystemPackageInstallErrorTpl, err)
	}

	return nil
}

func (m *AptManager) Update() error {
	slog.Info("Updating apt")
	cmd := command.NewShellCommand(m.binary, m.updateOpts, nil, true)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("apt update failed: %w", err)
	}
	return nil
}

func (m *AptManager) Clean() error {
	slog.Info("Cleaning up apt")

	cmd := command.NewShellCommand(m.binary, m.cleanOpts, nil, true)
	if err := cmd.Run(); err != nil {
		slog.Error("apt clean step failed: " + err.Error())
		return fmt.Errorf("apt clean failed: %w", err)
	}

	cmd = command.NewShellCommand(m.binary, m.autoRemoveOpts, nil, true)
	if err := cmd.Run(); err != nil {
		slog.Error("apt autoremove step failed: " + err.Error())
		return fmt.Errorf("apt autoremove failed: %w", err)
	}

	if err := m.removePackageListCache(); err != nil {
		slog.Error("failed to remove apt lists (" + aptListsPath + ") from file system: " + err.Error())
		return err
	}

	return nil
}

func (m *AptManager) removePackageListCache() error {
	slog.Debug("Removing " + aptListsPath)

	exists, err := afero.DirExists(file.AppFs, aptListsPath)
	if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", aptListsPath, err)
	}
	if !exists {
		slog.Debug(aptListsPath + " does not exist")
		return nil
	}

	if err := file.AppFs.RemoveAll(aptListsPath); err != nil {
		return fmt.Errorf(errors.FileRemoveErrorTpl, aptListsPath, err)
	}

	return nil
}
