package system

import (
	"fmt"
	"testing"
	commandMock "trustpack/mocks/trustpack/system/command"
	"trustpack/system/command"
	"trustpack/system/file"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMemFs(t *testing.T) afero.Fs {
	file.AppFs = afero.NewMemMapFs()
	t.Cleanup(func() {
		file.AppFs = afero.NewOsFs()
	})
	return file.AppFs
}

func expectShellCommand(t *testing.T, wantBin string, wantArgs []string, runErr error) *int {
	old := command.NewShellCommand
	t.Cleanup(func() {
		command.NewShellCommand = old
	})

	calls := 0
	command.NewShellCommand = func(name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
		calls++
		assert.Equal(t, wantBin, name, "binary name = %v, want binary %v", name, wantBin)
		assert.Equal(t, wantArgs, args)

		mockShellCommand := commandMock.NewMockShellCommandRunner(t)
		mockShellCommand.EXPECT().Run().Return(runErr)
		return mockShellCommand
	}
	return &calls
}

func Test_UpdateCACertificates(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name           string
		localSystem    LocalSystem
		wantBin        string
		wantArgs       []string
		runErr         error
		wantCalls      int
		wantErr        bool
		wantErrMessage string
	}{
		{
			name:        "Test ubuntu",
			localSystem: LocalSystem{Vendor: "ubuntu"},
			wantBin:     "update-ca-certificates",
			wantCalls:   1,
		},
		{
			name:        "Test rockylinux",
			localSystem: LocalSystem{Vendor: "rockylinux"},
			wantBin:     "update-ca-trust",
			wantArgs:    []string{"extract"},
			wantCalls:   1,
		},
		{
			name:           "Test unsupported os",
			localSystem:    LocalSystem{Vendor: "unsupported"},
			wantErr:        true,
			wantErrMessage: "unsupported OS",
		},
		{
			name:           "Test run error",
			localSystem:    LocalSystem{Vendor: "ubuntu"},
			wantBin:        "update-ca-certificates",
			runErr:         fmt.Errorf("command failed"),
			wantCalls:      1,
			wantErr:        true,
			wantErrMessage: "failed to update CA certificates",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := expectShellCommand(t, tt.wantBin, tt.wantArgs, tt.runErr)

			err := tt.localSystem.UpdateCACertificates()
			if tt.wantErr {
				assert.ErrorContains(err, tt.wantErrMessage)
			} else {
				assert.NoError(err)
			}
			assert.Equal(tt.wantCalls, *calls)
		})
	}
}

func Test_InstallAnchor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	const certPEM = "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n"

	tests := []struct {
		name           string
		localSystem    LocalSystem
		anchorName     string
		setupFs        func(fs afero.Fs)
		wantBin        string
		wantArgs       []string
		wantDest       string
		wantErr        bool
		wantErrMessage string
	}{
		{
			name:        "debian anchor",
			localSystem: LocalSystem{Vendor: "debian"},
			anchorName:  "aire-intermediate",
			setupFs: func(fs afero.Fs) {
				require.NoError(afero.WriteFile(fs, "/tmp/intermediate.pem", []byte(certPEM), 0600))
			},
			wantBin:  "update-ca-certificates",
			wantDest: "/usr/local/share/ca-certificates/aire-intermediate.crt",
		},
		{
			name:        "rhel anchor",
			localSystem: LocalSystem{Vendor: "rhel"},
			anchorName:  "aire-intermediate",
			setupFs: func(fs afero.Fs) {
				require.NoError(afero.WriteFile(fs, "/tmp/intermediate.pem", []byte(certPEM), 0600))
			},
			wantBin:  "update-ca-trust",
			wantArgs: []string{"extract"},
			wantDest: "/etc/pki/ca-trust/source/anchors/aire-intermediate.pem",
		},
		{
			name:           "missing source",
			localSystem:    LocalSystem{Vendor: "ubuntu"},
			anchorName:     "aire-intermediate",
			setupFs:        func(fs afero.Fs) {},
			wantErr:        true,
			wantErrMessage: "is not a file",
		},
		{
			name:           "name with path separator",
			localSystem:    LocalSystem{Vendor: "ubuntu"},
			anchorName:     "../etc/passwd",
			setupFs:        func(fs afero.Fs) {},
			wantErr:        true,
			wantErrMessage: "invalid trust anchor name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := useMemFs(t)
			tt.setupFs(fs)
			calls := expectShellCommand(t, tt.wantBin, tt.wantArgs, nil)

			dest, err := tt.localSystem.InstallAnchor("/tmp/intermediate.pem", tt.anchorName)
			if tt.wantErr {
				assert.ErrorContains(err, tt.wantErrMessage)
				assert.Equal(0, *calls)
				return
			}
			require.NoError(err)
			assert.Equal(tt.wantDest, dest)
			assert.Equal(1, *calls)

			contents, err := afero.ReadFile(fs, tt.wantDest)
			require.NoError(err)
			assert.Equal(certPEM, string(contents))
		})
	}
}

func Test_SystemBundlePath(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	t.Run("supported vendor", func(t *testing.T) {
		useMemFs(t)
		p, err := (&LocalSystem{Vendor: "ubuntu"}).SystemBundlePath()
		require.NoError(err)
		assert.Equal("/etc/ssl/certs/ca-certificates.crt", p)
	})

	t.Run("unsupported vendor probes known paths", func(t *testing.T) {
		fs := useMemFs(t)
		require.NoError(afero.WriteFile(fs, "/etc/ssl/cert.pem", []byte("x"), 0644))

		p, err := (&LocalSystem{Vendor: "alpine"}).SystemBundlePath()
		require.NoError(err)
		assert.Equal("/etc/ssl/cert.pem", p)
	})

	t.Run("unsupported vendor without bundle", func(t *testing.T) {
		useMemFs(t)
		_, err := (&LocalSystem{Vendor: "alpine"}).SystemBundlePath()
		assert.ErrorContains(err, "no system CA bundle found")
	})
}
