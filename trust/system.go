package trust

import (
	"log/slog"
	"trustpack/system"
	"trustpack/system/file"
)

// EnvSystemBundle returns SSL_CERT_FILE when it names an existing file. ok is
// false when the variable is unset, empty or not a file.
func EnvSystemBundle() (path string, ok bool, err error) {
	path, set := lookupEnv(SSLCertFileEnv)
	if !set || path == "" {
		return "", false, nil
	}
	isFile, err := file.IsFile(path)
	if err != nil {
		return "", false, err
	}
	if !isFile {
		slog.Warn(SSLCertFileEnv + "=" + path + " is not a file, falling back to the distribution bundle")
		return "", false, nil
	}
	slog.Debug("Using system CA bundle from " + SSLCertFileEnv + "=" + path)
	return path, true, nil
}

// SystemBundle resolves the base OS bundle: SSL_CERT_FILE when it names an
// existing file, otherwise the bundle for the detected distribution.
func SystemBundle(l *system.LocalSystem) (string, error) {
	path, ok, err := EnvSystemBundle()
	if err != nil || ok {
		return path, err
	}
	return l.SystemBundlePath()
}
