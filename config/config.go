// Package config loads the build manifest: a YAML file overlaid by
// TRUSTPACK_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"trustpack/health"
	"trustpack/system/file"
	"trustpack/tools/intermediate"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
)

const (
	DefaultFile   = "trustpack.yaml"
	DefaultOutput = "/etc/ssl/certs/aire-ca-bundle.pem"
	EnvPrefix     = "TRUSTPACK_"
)

type Manifest struct {
	SystemBundle string       `koanf:"system_bundle"`
	Intermediate Intermediate `koanf:"intermediate"`
	Output       string       `koanf:"output"`
	Strict       bool         `koanf:"strict"`
	EnvFile      string       `koanf:"env_file"`
	EnvFormat    string       `koanf:"env_format"`
	Health       Health       `koanf:"health"`
}

type Intermediate struct {
	Path string `koanf:"path"`
	URL  string `koanf:"url"`
}

type Health struct {
	URL         string        `koanf:"url"`
	Interval    time.Duration `koanf:"interval"`
	Timeout     time.Duration `koanf:"timeout"`
	StartPeriod time.Duration `koanf:"start_period"`
	Retries     int           `koanf:"retries"`
}

func (h Health) Policy() health.Policy {
	return health.Policy{
		Interval:    h.Interval,
		Timeout:     h.Timeout,
		StartPeriod: h.StartPeriod,
		Retries:     h.Retries,
	}
}

// sections holds the nested keys whose first underscore in an environment
// variable name separates section from field.
var sections = []string{"intermediate", "health"}

func defaults() map[string]interface{} {
	p := health.DefaultPolicy()
	return map[string]interface{}{
		"intermediate.path":   intermediate.DefaultInstallPath,
		"output":              DefaultOutput,
		"env_format":          "shell",
		"health.url":          health.DefaultURL,
		"health.interval":     p.Interval.String(),
		"health.timeout":      p.Timeout.String(),
		"health.start_period": p.StartPeriod.String(),
		"health.retries":      p.Retries,
	}
}

// Load reads the manifest at path. With required false a missing file is not
// an error and only defaults and the environment apply.
func Load(path string, required bool) (*Manifest, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load manifest defaults: %w", err)
	}

	if path == "" {
		path = DefaultFile
	}
	exists, err := file.IsPathExist(path)
	if err != nil {
		return nil, err
	}
	switch {
	case exists:
		data, err := file.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
		}
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
		slog.Debug("Loaded manifest " + path)
	case required:
		return nil, fmt.Errorf("manifest %s does not exist", path)
	default:
		slog.Debug("No manifest at " + path + ", using defaults")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load %s environment: %w", EnvPrefix, err)
	}

	var m Manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// envKey maps TRUSTPACK_INTERMEDIATE_URL to intermediate.url and
// TRUSTPACK_SYSTEM_BUNDLE to system_bundle.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}
