package system

import (
	"os/user"
	"testing"
	"trustpack/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zcalusic/sysinfo"
)

func TestGetLocalSystem(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tests := []struct {
		name      string
		vendor    string
		wantPmBin string
		wantErr   bool
	}{
		{
			name:      "Test Ubuntu",
			vendor:    "ubuntu",
			wantPmBin: "apt-get",
		},
		{
			name:      "Test Rocky",
			vendor:    "rockylinux",
			wantPmBin: "dnf",
		},
		{
			name:    "Test Unsupported OS",
			vendor:  "alpine",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := sysInfo
			defer func() {
				sysInfo = old
			}()
			sysInfo = func() sysinfo.SysInfo {
				return sysinfo.SysInfo{
					OS: sysinfo.OS{
						Vendor:       tt.vendor,
						Version:      "1",
						Architecture: "amd64",
					},
				}
			}
			ls, err := GetLocalSystem()

			require.Equal(tt.wantErr, err != nil, "GetLocalSystem() error = %v, wantErr %v", err, tt.wantErr)
			if err != nil {
				var unsupported *errors.UnsupportedOSError
				assert.ErrorAs(err, &unsupported)
				return
			}
			assert.Equal(tt.wantPmBin, ls.PackageManager.GetBin())
			assert.Equal("amd64", ls.Arch)
		})
	}
}

func TestLocalSystem_TrustStore(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		vendor     string
		wantBundle string
		wantAnchor string
		wantBin    string
		wantErr    bool
	}{
		{"debian", "/etc/ssl/certs/ca-certificates.crt", "/usr/local/share/ca-certificates", "update-ca-certificates", false},
		{"ubuntu", "/etc/ssl/certs/ca-certificates.crt", "/usr/local/share/ca-certificates", "update-ca-certificates", false},
		{"rhel", "/etc/pki/tls/certs/ca-bundle.crt", "/etc/pki/ca-trust/source/anchors", "update-ca-trust", false},
		{"almalinux", "/etc/pki/tls/certs/ca-bundle.crt", "/etc/pki/ca-trust/source/anchors", "update-ca-trust", false},
		{"alpine", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.vendor, func(t *testing.T) {
			l := &LocalSystem{Vendor: tt.vendor}
			ts, err := l.TrustStore()
			if tt.wantErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tt.wantBundle, ts.BundlePath)
			assert.Equal(tt.wantAnchor, ts.AnchorDir)
			assert.Equal(tt.wantBin, ts.UpdateBin)
		})
	}
}

func TestRequireSudo(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		wantErr bool
	}{
		{name: "Test as user", uid: "1000", wantErr: true},
		{name: "Test as root", uid: "0", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := currentUser
			defer func() {
				currentUser = old
			}()
			currentUser = func() (*user.User, error) {
				return &user.User{Uid: tt.uid}, nil
			}
			err := RequireSudo()
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireSudo() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
