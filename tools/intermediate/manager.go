package intermediate

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"
	"trustpack/bundle"
	"trustpack/errors"
	"trustpack/system/file"
	"trustpack/tools"
	"trustpack/trust"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
)

const DefaultInstallPath = "/usr/local/share/trustpack/intermediate.pem"

const downloadTimeout = 30 * time.Second

var _ tools.ToolManager = (*Manager)(nil)

type Manager struct {
	URL         string
	InstallPath string
	// Client is built from trust.LoadPool when nil.
	Client *http.Client
	Force  bool
}

func NewManager(url, installPath string, force bool) *Manager {
	if installPath == "" {
		installPath = DefaultInstallPath
	}
	return &Manager{
		URL:         url,
		InstallPath: installPath,
		Force:       force,
	}
}

func (m *Manager) Installed() (bool, error) {
	exists, err := file.IsPathExist(m.InstallPath)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing intermediate certificate at '%s': %w", m.InstallPath, err)
	}
	if exists {
		isFile, err := file.IsFile(m.InstallPath)
		if err != nil {
			return false, fmt.Errorf("failed to check if '%s' is a file: %w", m.InstallPath, err)
		}
		if !isFile {
			return false, fmt.Errorf("'%s' is not a file", m.InstallPath)
		}
	}
	return exists, nil
}

func (m *Manager) Install() error {
	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if installed {
		if !m.Force {
			return &errors.AlreadyExistsError{Name: "intermediate certificate", Path: m.InstallPath}
		}
		slog.Info("Replacing existing intermediate certificate at " + m.InstallPath)
	}

	if m.URL == "" {
		return fmt.Errorf("no download URL given for the intermediate certificate")
	}

	client := m.Client
	if client == nil {
		client, err = trust.NewHTTPClient(downloadTimeout)
		if err != nil {
			return fmt.Errorf("unable to build HTTP client for intermediate download: %w", err)
		}
	}

	downloadDir, err := afero.TempDir(file.AppFs, "", "trustpack")
	if err != nil {
		return fmt.Errorf("unable to create trustpack temporary directory for download: %w", err)
	}
	defer func() {
		err := file.AppFs.RemoveAll(downloadDir)
		if err != nil {
			slog.Warn("Failed to remove temporary directory '" + downloadDir + "': " + err.Error())
		}
	}()
	downloadPath := filepath.Join(downloadDir, "intermediate")

	s, _ := pterm.DefaultSpinner.Start("Downloading intermediate certificate...")
	if err := file.DownloadFile(client, m.URL, downloadPath); err != nil {
		s.Fail("Download failed.")
		return fmt.Errorf("intermediate certificate download failed: %w", err)
	}
	s.Success("Download complete.")

	raw, err := file.ReadFile(downloadPath)
	if err != nil {
		return fmt.Errorf(errors.FileReadErrorTpl, downloadPath, err)
	}
	data, err := bundle.ToPEM(raw)
	if err != nil {
		return fmt.Errorf("downloaded intermediate from %s: %w", m.URL, err)
	}
	slog.Debug("Downloaded intermediate contains " + strconv.Itoa(bundle.CountBlocks(data)) + " PEM block(s)")

	if err := file.WriteFileAtomic(m.InstallPath, data, 0644); err != nil {
		return fmt.Errorf("failed to install intermediate certificate to '%s': %w", m.InstallPath, err)
	}
	slog.Info("Intermediate certificate installed to " + m.InstallPath)

	return nil
}

// Update replaces the installed intermediate. The current file is left in
// place until the new one has been downloaded and written.
func (m *Manager) Update() error {
	slog.Info("Updating intermediate certificate")
	m.Force = true
	return m.Install()
}

func (m *Manager) Remove() error {
	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if !installed {
		slog.Info("Intermediate certificate is not installed")
		return nil
	}

	slog.Info("Removing intermediate certificate")
	if err := file.AppFs.Remove(m.InstallPath); err != nil {
		return fmt.Errorf(errors.FileRemoveErrorTpl, m.InstallPath, err)
	}
	slog.Info("Intermediate certificate removed from " + m.InstallPath)

	return nil
}
