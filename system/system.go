package system

import (
	"fmt"
	"github.com/zcalusic/sysinfo"
	"os/user"
	"trustpack/errors"
	"trustpack/system/syspkg"
)

type LocalSystem struct {
	Vendor         string
	Version        string
	Arch           string
	PackageManager syspkg.SystemPackageManager
}

// TrustStore describes where a distribution keeps its CA material and how
// the extracted bundle is regenerated.
type TrustStore struct {
	BundlePath string
	AnchorDir  string
	AnchorExt  string
	UpdateBin  string
	UpdateArgs []string
}

var debianTrustStore = TrustStore{
	BundlePath: "/etc/ssl/certs/ca-certificates.crt",
	AnchorDir:  "/usr/local/share/ca-certificates",
	AnchorExt:  ".crt",
	UpdateBin:  "update-ca-certificates",
}

var rhelTrustStore = TrustStore{
	BundlePath: "/etc/pki/tls/certs/ca-bundle.crt",
	AnchorDir:  "/etc/pki/ca-trust/source/anchors",
	AnchorExt:  ".pem",
	UpdateBin:  "update-ca-trust",
	UpdateArgs: []string{"extract"},
}

// KnownBundlePaths are probed when the distribution is not recognised.
var KnownBundlePaths = []string{
	"/etc/ssl/certs/ca-certificates.crt", // Debian/Ubuntu/Alpine
	"/etc/pki/tls/certs/ca-bundle.crt",   // RHEL/CentOS/Rocky/Alma
	"/etc/ssl/cert.pem",                  // Alpine/macOS
}

var sysInfo = func() sysinfo.SysInfo {
	var si sysinfo.SysInfo
	si.GetSysInfo()
	return si
}

func GetLocalSystem() (*LocalSystem, error) {
	si := sysInfo()

	var pm syspkg.SystemPackageManager

	switch si.OS.Vendor {
	case "ubuntu", "debian":
		pm = syspkg.NewAptManager()
	case "almalinux", "centos", "rockylinux", "rhel":
		pm = syspkg.NewDnfManager()
	default:
		return nil, &errors.UnsupportedOSError{Vendor: si.OS.Vendor, Version: si.OS.Version}
	}

	return &LocalSystem{
		Vendor:         si.OS.Vendor,
		Version:        si.OS.Version,
		Arch:           si.OS.Architecture,
		PackageManager: pm,
	}, nil
}

func (l *LocalSystem) TrustStore() (*TrustStore, error) {
	switch l.Vendor {
	case "ubuntu", "debian":
		ts := debianTrustStore
		return &ts, nil
	case "almalinux", "centos", "rockylinux", "rhel":
		ts := rhelTrustStore
		return &ts, nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s %s", l.Vendor, l.Version)
	}
}

var currentUser = func() (*user.User, error) {
	return user.Current()
}

func RequireSudo() error {
	current, err := currentUser()
	if err != nil {
		return fmt.Errorf("unable to determine current user: %w", err)
	}

	if current.Uid != "0" {
		return fmt.Errorf("this command must be run as root")
	}

	return nil
}
