package trust

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
	"trustpack/system/file"
)

var systemCertPool = x509.SystemCertPool

var lookupEnv = os.LookupEnv

// LoadPool returns the pool an outbound client should trust: the composed
// bundle if AIRE_CA_BUNDLE is set, the base bundle if SSL_CERT_FILE is set,
// and the system pool otherwise.
func LoadPool() (*x509.CertPool, error) {
	for _, key := range []string{BundleEnv, SSLCertFileEnv} {
		if path, ok := lookupEnv(key); ok && path != "" {
			slog.Debug("Loading trust pool from " + key + "=" + path)
			pool, err := LoadPoolFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			return pool, nil
		}
	}

	pool, err := systemCertPool()
	if err != nil || pool == nil {
		slog.Debug("System certificate pool unavailable, using an empty pool")
		return x509.NewCertPool(), nil
	}
	return pool, nil
}

func LoadPoolFromFile(path string) (*x509.CertPool, error) {
	data, err := file.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle %s: %w", path, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("no certificates found in CA bundle %s", path)
	}
	return pool, nil
}

// NewHTTPClient returns a client whose TLS verification uses LoadPool.
func NewHTTPClient(timeout time.Duration) (*http.Client, error) {
	pool, err := LoadPool()
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}
