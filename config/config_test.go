package config

import (
	"testing"
	"time"
	"trustpack/health"
	"trustpack/tools/intermediate"
	"trustpack/trustpacktest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifest = `
system_bundle: /etc/pki/tls/certs/ca-bundle.crt
intermediate:
  path: /opt/aire/intermediate.pem
  url: https://pki.example.test/issuing.crt
output: /opt/aire/ca-bundle.pem
strict: true
env_file: /etc/profile.d/trustpack.sh
health:
  interval: 10s
  retries: 5
`

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	t.Run("defaults without a manifest", func(t *testing.T) {
		trustpacktest.UseMemFs()
		defer trustpacktest.ResetAppFs()

		m, err := Load("", false)
		require.NoError(err)
		assert.Equal("", m.SystemBundle)
		assert.Equal(intermediate.DefaultInstallPath, m.Intermediate.Path)
		assert.Equal(DefaultOutput, m.Output)
		assert.Equal("shell", m.EnvFormat)
		assert.False(m.Strict)
		assert.Equal(health.DefaultURL, m.Health.URL)
		assert.Equal(health.DefaultPolicy(), m.Health.Policy())
	})

	t.Run("required manifest missing", func(t *testing.T) {
		trustpacktest.UseMemFs()
		defer trustpacktest.ResetAppFs()

		_, err := Load("/etc/trustpack.yaml", true)
		assert.ErrorContains(err, "does not exist")
	})

	t.Run("manifest overrides defaults", func(t *testing.T) {
		fs := trustpacktest.UseMemFs()
		defer trustpacktest.ResetAppFs()
		require.NoError(afero.WriteFile(fs, "/etc/trustpack.yaml", []byte(manifest), 0644))

		m, err := Load("/etc/trustpack.yaml", true)
		require.NoError(err)
		assert.Equal("/etc/pki/tls/certs/ca-bundle.crt", m.SystemBundle)
		assert.Equal("/opt/aire/intermediate.pem", m.Intermediate.Path)
		assert.Equal("https://pki.example.test/issuing.crt", m.Intermediate.URL)
		assert.Equal("/opt/aire/ca-bundle.pem", m.Output)
		assert.True(m.Strict)
		assert.Equal("/etc/profile.d/trustpack.sh", m.EnvFile)
		assert.Equal(10*time.Second, m.Health.Interval)
		assert.Equal(5*time.Second, m.Health.Timeout)
		assert.Equal(5, m.Health.Retries)
	})

	t.Run("environment overrides manifest", func(t *testing.T) {
		fs := trustpacktest.UseMemFs()
		defer trustpacktest.ResetAppFs()
		require.NoError(afero.WriteFile(fs, DefaultFile, []byte(manifest), 0644))

		t.Setenv("TRUSTPACK_OUTPUT", "/srv/bundle.pem")
		t.Setenv("TRUSTPACK_INTERMEDIATE_URL", "https://pki.example.test/other.crt")
		t.Setenv("TRUSTPACK_STRICT", "false")
		t.Setenv("TRUSTPACK_HEALTH_START_PERIOD", "1m")

		m, err := Load("", false)
		require.NoError(err)
		assert.Equal("/srv/bundle.pem", m.Output)
		assert.Equal("https://pki.example.test/other.crt", m.Intermediate.URL)
		assert.Equal("/opt/aire/intermediate.pem", m.Intermediate.Path)
		assert.False(m.Strict)
		assert.Equal(time.Minute, m.Health.StartPeriod)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fs := trustpacktest.UseMemFs()
		defer trustpacktest.ResetAppFs()
		require.NoError(afero.WriteFile(fs, "/bad.yaml", []byte("output: [unterminated"), 0644))

		_, err := Load("/bad.yaml", true)
		assert.ErrorContains(err, "failed to parse manifest")
	})
}

func Test_envKey(t *testing.T) {
	tests := map[string]string{
		"TRUSTPACK_SYSTEM_BUNDLE":       "system_bundle",
		"TRUSTPACK_INTERMEDIATE_PATH":   "intermediate.path",
		"TRUSTPACK_HEALTH_START_PERIOD": "health.start_period",
		"TRUSTPACK_ENV_FILE":            "env_file",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
