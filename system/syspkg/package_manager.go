package syspkg

type PackageList struct {
	Packages []string
}

// SystemPackageManager covers the package operations needed to provision a
// trust store in a fresh base image.
type SystemPackageManager interface {
	GetBin() string
	Install(list *PackageList) error
	Update() error
	Clean() error
}
