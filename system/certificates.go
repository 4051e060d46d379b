package system

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"trustpack/errors"
	"trustpack/system/command"
	"trustpack/system/file"
)

func (l *LocalSystem) UpdateCACertificates() error {
	ts, err := l.TrustStore()
	if err != nil {
		return err
	}

	s := command.NewShellCommand(ts.UpdateBin, ts.UpdateArgs, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf(errors.TrustStoreUpdateErrorTpl, err)
	}

	return nil
}

// InstallAnchor copies a PEM certificate into the distribution's anchor
// directory under name and regenerates the OS bundle. It returns the path
// the anchor was written to.
func (l *LocalSystem) InstallAnchor(pemPath, name string) (string, error) {
	ts, err := l.TrustStore()
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid trust anchor name '%s'", name)
	}

	isFile, err := file.IsFile(pemPath)
	if err != nil {
		return "", err
	}
	if !isFile {
		return "", fmt.Errorf("trust anchor source '%s' is not a file", pemPath)
	}

	if err := file.AppFs.MkdirAll(ts.AnchorDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create anchor directory %s: %w", ts.AnchorDir, err)
	}

	dest := filepath.Join(ts.AnchorDir, name+ts.AnchorExt)
	slog.Info("Installing trust anchor " + pemPath + " as " + dest)
	if err := file.Copy(pemPath, dest); err != nil {
		return "", fmt.Errorf(errors.TrustAnchorInstallErrorTpl, pemPath, dest, err)
	}
	if err := file.AppFs.Chmod(dest, 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s to 0644: %w", dest, err)
	}

	if err := l.UpdateCACertificates(); err != nil {
		return "", err
	}

	return dest, nil
}

// SystemBundlePath returns the OS bundle for the detected distribution, or the
// first known bundle path that exists when the distribution is unsupported.
func (l *LocalSystem) SystemBundlePath() (string, error) {
	if ts, err := l.TrustStore(); err == nil {
		return ts.BundlePath, nil
	}

	for _, p := range KnownBundlePaths {
		isFile, err := file.IsFile(p)
		if err != nil {
			return "", err
		}
		if isFile {
			slog.Debug("Using probed system CA bundle " + p)
			return p, nil
		}
	}

	return "", fmt.Errorf("no system CA bundle found for %s %s", l.Vendor, l.Version)
}
