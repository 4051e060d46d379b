package file

import (
	"fmt"
	"github.com/spf13/afero"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"trustpack/errors"
)

var AppFs = afero.NewOsFs()

func IsPathExist(path string) (bool, error) {
	return afero.Exists(AppFs, path)
}

func IsFile(path string) (bool, error) {
	i, err := AppFs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf(errors.FileStatErrorTpl, path, err)
	}
	return i.Mode().IsRegular(), nil
}

func Stat(path string) (os.FileInfo, error) {
	i, err := AppFs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf(errors.FileStatErrorTpl, path, err)
	}
	return i, nil
}

func Create(path string) (afero.File, error) {
	slog.Debug("Creating file: " + path)
	fh, err := AppFs.Create(path)
	if err != nil {
		return nil, fmt.Errorf(errors.FileCreateErrorTpl, path, err)
	}
	slog.Debug("File created")
	return fh, nil
}

func Open(path string) (afero.File, error) {
	fh, err := AppFs.Open(path)
	if err != nil {
		return nil, err
	}
	return fh, nil
}

// ReadFile returns the full contents of a regular file. The returned error
// wraps the underlying fs error so callers can test for fs.ErrNotExist.
func ReadFile(path string) ([]byte, error) {
	i, err := AppFs.Stat(path)
	if err != nil {
		return nil, err
	}
	if !i.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return afero.ReadFile(AppFs, path)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place. On failure the previous contents of path are left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if i, err := AppFs.Stat(path); err == nil && i.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	dir := filepath.Dir(path)
	if err := AppFs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(AppFs, dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	slog.Debug("Writing " + path + " via " + tmpPath)

	cleanup := func() {
		if err := AppFs.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove temporary file '" + tmpPath + "': " + err.Error())
		}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf(errors.FileWriteErrorTpl, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := AppFs.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s to %s: %w", tmpPath, perm, err)
	}
	if err := AppFs.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf(errors.FileMoveErrorTpl, tmpPath, path, err)
	}

	slog.Debug("Write complete")
	return nil
}

func moveFile(src, dest string) error {
	slog.Debug("Moving file from " + src + " to " + dest)
	if err := AppFs.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}
	slog.Debug("Move complete")
	return nil
}

func copyFile(src, dest string) error {
	slog.Debug("Copying file from " + src + " to " + dest)

	sourceFileStat, err := AppFs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat file %s during copy: %w", src, err)
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	sourceFh, err := Open(src)
	if err != nil {
		return fmt.Errorf(errors.FileOpenErrorTpl, src, err)
	}
	defer sourceFh.Close()

	destinationFh, err := Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create copy destination file '%s': %w", dest, err)
	}
	defer destinationFh.Close()

	_, err = io.Copy(destinationFh, sourceFh)
	if err != nil {
		return fmt.Errorf(errors.FileCopyErrorTpl, src, dest, err)
	}

	slog.Debug("Copy complete")

	return nil
}

func Copy(src, dest string) error {
	srcStat, err := Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file '%s': %w", src, err)
	}
	if srcStat.IsDir() {
		return fmt.Errorf("'%s' is a directory", src)
	}
	return copyFile(src, dest)
}

func Move(src, dest string) error {
	srcStat, err := Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file '%s': %w", src, err)
	}
	if srcStat.IsDir() {
		return fmt.Errorf("'%s' is a directory", src)
	}
	return moveFile(src, dest)
}

// DownloadFile fetches url into filepath. A nil client uses http.DefaultClient.
func DownloadFile(client *http.Client, url string, filepath string) error {
	slog.Debug("Downloading file from " + url + " to " + filepath)

	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for '%s': %w", url, err)
	}

	resp, err := client.Do(request)
	if err != nil {
		return fmt.Errorf(errors.RequestFailedErrorTpl, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file with status '%s'", resp.Status)
	}

	newFh, err := Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to save download to file '%s': %w", filepath, err)
	}
	defer newFh.Close()

	_, err = io.Copy(newFh, resp.Body)
	if err != nil {
		return fmt.Errorf(errors.RequestCopyFailedErrorTpl, filepath, err)
	}

	slog.Debug("Download complete")

	return nil
}
