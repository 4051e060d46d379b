package trustpacktest

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

// Cert is a generated test certificate with its signing key.
type Cert struct {
	Cert *x509.Certificate
	Key  crypto.Signer
	DER  []byte
	PEM  []byte
}

type CertOptions struct {
	CommonName string
	IsCA       bool
	NotBefore  time.Time
	NotAfter   time.Time
	DNSNames   []string
	// Parent signs the certificate; nil means self-signed.
	Parent *Cert
}

var serial int64 = 1000

func NewCert(t *testing.T, opts CertOptions) *Cert {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	if opts.NotBefore.IsZero() {
		opts.NotBefore = time.Now().Add(-time.Hour)
	}
	if opts.NotAfter.IsZero() {
		opts.NotAfter = time.Now().Add(24 * time.Hour)
	}
	serial++

	tpl := &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: opts.CommonName, Organization: []string{"trustpack test"}},
		NotBefore:             opts.NotBefore,
		NotAfter:              opts.NotAfter,
		DNSNames:              opts.DNSNames,
		BasicConstraintsValid: true,
		IsCA:                  opts.IsCA,
	}
	if opts.IsCA {
		tpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	} else {
		tpl.KeyUsage = x509.KeyUsageDigitalSignature
		tpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	}

	parentTpl, parentKey := tpl, crypto.Signer(key)
	if opts.Parent != nil {
		parentTpl, parentKey = opts.Parent.Cert, opts.Parent.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, tpl, parentTpl, key.Public(), parentKey)
	if err != nil {
		t.Fatalf("failed to create certificate %s: %v", opts.CommonName, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("failed to parse certificate %s: %v", opts.CommonName, err)
	}

	return &Cert{
		Cert: cert,
		Key:  key,
		DER:  der,
		PEM:  pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
	}
}

func NewRoot(t *testing.T, cn string) *Cert {
	t.Helper()
	return NewCert(t, CertOptions{CommonName: cn, IsCA: true})
}

func NewIntermediate(t *testing.T, cn string, parent *Cert) *Cert {
	t.Helper()
	return NewCert(t, CertOptions{CommonName: cn, IsCA: true, Parent: parent})
}

func NewLeaf(t *testing.T, cn string, parent *Cert) *Cert {
	t.Helper()
	return NewCert(t, CertOptions{CommonName: cn, DNSNames: []string{cn}, Parent: parent})
}

// Bundle concatenates the PEM encoding of certs in order.
func Bundle(certs ...*Cert) []byte {
	var b []byte
	for _, c := range certs {
		b = append(b, c.PEM...)
	}
	return b
}
