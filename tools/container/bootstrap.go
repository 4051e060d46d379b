package container

import (
	"fmt"
	"log/slog"
	"trustpack/errors"
	"trustpack/system"
	"trustpack/system/syspkg"
)

// Bootstrap prepares a base image to carry a trust store: it installs
// ca-certificates and regenerates the OS bundle.
func Bootstrap(l *system.LocalSystem) error {
	err := l.PackageManager.Update()
	defer func() {
		if err := l.PackageManager.Clean(); err != nil {
			slog.Warn(fmt.Errorf(errors.SystemCleanErrorTpl, err).Error())
		}
	}()
	if err != nil {
		return fmt.Errorf(errors.SystemUpdateErrorTpl, err)
	}

	slog.Info("Installing and configuring ca-certificates")
	packages := &syspkg.PackageList{Packages: []string{"ca-certificates"}}

	if err := l.PackageManager.Install(packages); err != nil {
		return fmt.Errorf("failed to install ca-certificates: %w", err)
	}

	if err := l.UpdateCACertificates(); err != nil {
		return err
	}

	return nil
}
