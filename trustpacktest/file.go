package trustpacktest

import (
	"github.com/spf13/afero"
	"trustpack/system/file"
)

func ResetAppFs() {
	// Reset the AppFs to the original filesystem
	file.AppFs = afero.NewOsFs()
}

// UseMemFs swaps file.AppFs for an in-memory filesystem until ResetAppFs.
func UseMemFs() afero.Fs {
	file.AppFs = afero.NewMemMapFs()
	return file.AppFs
}
