package bundle

import (
	"testing"
	"time"
	"trustpack/errors"
	"trustpack/trustpacktest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corruptCertBlock = "-----BEGIN CERTIFICATE-----\nZ2FyYmFnZQ==\n-----END CERTIFICATE-----\n"

func TestInspect(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	root := trustpacktest.NewRoot(t, "Root One")
	intermediate := trustpacktest.NewIntermediate(t, "Aire Issuing CA", root)
	leaf := trustpacktest.NewLeaf(t, "app.internal", intermediate)

	fs := trustpacktest.UseMemFs()
	defer trustpacktest.ResetAppFs()

	data := append(trustpacktest.Bundle(root, intermediate, leaf), []byte(corruptCertBlock)...)
	require.NoError(afero.WriteFile(fs, "/bundle.pem", data, 0644))

	report, err := Inspect("/bundle.pem")
	require.NoError(err)

	assert.Equal("/bundle.pem", report.Path)
	assert.Equal(len(data), report.Bytes)
	require.Len(report.Entries, 4)
	assert.Equal(3, report.Certificates())
	assert.Equal(2, report.CAs())
	assert.Equal(0, report.ExpiredCount(time.Now()))
	assert.Equal(3, report.ExpiredCount(time.Now().Add(48*time.Hour)))

	first := report.Entries[0]
	assert.Equal(0, first.Index)
	assert.Equal("CERTIFICATE", first.Type)
	assert.Contains(first.Subject, "CN=Root One")
	assert.Equal(first.Subject, first.Issuer)
	assert.Equal(root.Cert.SerialNumber.String(), first.Serial)
	assert.True(first.IsCA)
	assert.Equal(Fingerprint(root.DER), first.Fingerprint)

	assert.Contains(report.Entries[1].Issuer, "CN=Root One")
	assert.False(report.Entries[2].IsCA)

	broken := report.Entries[3]
	assert.Error(broken.Err)
	assert.Empty(broken.Subject)
	assert.False(broken.Expired(time.Now().Add(48 * time.Hour)))

	_, err = Inspect("/missing.pem")
	assert.ErrorIs(err, errors.ErrSourceUnavailable)
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	root := trustpacktest.NewRoot(t, "Root One")
	intermediate := trustpacktest.NewIntermediate(t, "Aire Issuing CA", root)

	fs := trustpacktest.UseMemFs()
	defer trustpacktest.ResetAppFs()

	good := trustpacktest.Bundle(root, intermediate)
	require.NoError(afero.WriteFile(fs, "/good.pem", good, 0644))
	require.NoError(afero.WriteFile(fs, "/corrupt.pem", append(append([]byte{}, good...), []byte("-----BEGIN CERTIFICATE-----\n!!!!\n-----END CERTIFICATE-----\n")...), 0644))
	require.NoError(afero.WriteFile(fs, "/unparseable.pem", []byte(corruptCertBlock), 0644))
	require.NoError(afero.WriteFile(fs, "/truncated.pem", append(append([]byte{}, good...), []byte("-----BEGIN CERTIFICATE-----\nMIIB")...), 0644))

	tests := []struct {
		name     string
		path     string
		now      time.Time
		wantKind error
	}{
		{name: "valid", path: "/good.pem", now: time.Now()},
		{name: "expired", path: "/good.pem", now: time.Now().Add(48 * time.Hour), wantKind: errors.ErrExpired},
		{name: "not yet valid", path: "/good.pem", now: time.Now().Add(-48 * time.Hour), wantKind: errors.ErrExpired},
		{name: "corrupt base64 block", path: "/corrupt.pem", now: time.Now(), wantKind: errors.ErrMalformedPEM},
		{name: "unparseable certificate", path: "/unparseable.pem", now: time.Now(), wantKind: errors.ErrMalformedPEM},
		{name: "truncated block", path: "/truncated.pem", now: time.Now(), wantKind: errors.ErrMalformedPEM},
		{name: "missing", path: "/missing.pem", now: time.Now(), wantKind: errors.ErrSourceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.path, tt.now)
			if tt.wantKind == nil {
				assert.NoError(err)
				return
			}
			assert.ErrorIs(err, tt.wantKind)
		})
	}
}

func TestDecode_SkipsText(t *testing.T) {
	assert := assert.New(t)

	root := trustpacktest.NewRoot(t, "Root One")
	other := trustpacktest.NewRoot(t, "Root Two")

	data := []byte("# Root One\n")
	data = append(data, root.PEM...)
	data = append(data, []byte("\n# Root Two\n")...)
	data = append(data, other.PEM...)

	blocks, rest := Decode(data)
	assert.Len(blocks, 2)
	assert.Empty(rest)
	assert.Equal(1, blocks[1].Index)

	_, err := Validate("/etc/pki/tls/certs/ca-bundle.crt", data, time.Now())
	assert.NoError(err)
}

func TestToPEM(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := trustpacktest.NewRoot(t, "Root One")

	got, err := ToPEM(c.DER)
	require.NoError(err)
	assert.Equal(c.PEM, got)

	got, err = ToPEM(c.PEM)
	require.NoError(err)
	assert.Equal(c.PEM, got)

	_, err = ToPEM([]byte("<html>not found</html>"))
	assert.ErrorContains(err, "neither PEM nor a DER certificate")
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint([]byte("abc"))
	assert.Len(t, fp, 95)
	assert.Equal(t, "BA:78:16:BF", fp[:11])
}
