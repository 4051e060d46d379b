// Package trust describes how the composed bundle is handed to the
// application process: the environment variable contract and a certificate
// pool loader that honours it.
package trust

import (
	"fmt"
	"log/slog"
	"strings"
	"trustpack/system/file"
)

const (
	// SSLCertFileEnv names the base OS trust bundle. Most TLS stacks read it
	// directly.
	SSLCertFileEnv = "SSL_CERT_FILE"
	// BundleEnv names the composed bundle. The application reads it to
	// configure its outbound HTTPS client.
	BundleEnv = "AIRE_CA_BUNDLE"
)

type Format string

const (
	FormatShell  Format = "shell"
	FormatDotenv Format = "dotenv"
	FormatDocker Format = "docker"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatShell, FormatDotenv, FormatDocker:
		return f, nil
	case "":
		return FormatShell, nil
	default:
		return "", fmt.Errorf("unsupported env format '%s', expected one of shell, dotenv, docker", s)
	}
}

type Env struct {
	SystemBundle   string
	ComposedBundle string
}

type pair struct {
	key   string
	value string
}

func (e *Env) pairs() []pair {
	var p []pair
	if e.SystemBundle != "" {
		p = append(p, pair{SSLCertFileEnv, e.SystemBundle})
	}
	if e.ComposedBundle != "" {
		p = append(p, pair{BundleEnv, e.ComposedBundle})
	}
	return p
}

// Render returns one line per variable in a fixed order, SSL_CERT_FILE first.
func (e *Env) Render(f Format) (string, error) {
	var b strings.Builder
	for _, p := range e.pairs() {
		switch f {
		case FormatShell:
			fmt.Fprintf(&b, "export %s=%s\n", p.key, shellQuote(p.value))
		case FormatDotenv:
			fmt.Fprintf(&b, "%s=%s\n", p.key, p.value)
		case FormatDocker:
			fmt.Fprintf(&b, "ENV %s=%s\n", p.key, p.value)
		default:
			return "", fmt.Errorf("unsupported env format '%s'", f)
		}
	}
	return b.String(), nil
}

// Environ returns the variables as KEY=value entries suitable for exec.Cmd.Env.
func (e *Env) Environ() []string {
	var env []string
	for _, p := range e.pairs() {
		env = append(env, p.key+"="+p.value)
	}
	return env
}

func (e *Env) WriteFile(path string, f Format) error {
	contents, err := e.Render(f)
	if err != nil {
		return err
	}
	slog.Info("Writing trust environment to " + path)
	if err := file.WriteFileAtomic(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("failed to write trust environment to %s: %w", path, err)
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
