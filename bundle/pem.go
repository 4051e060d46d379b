package bundle

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"
	"trustpack/errors"
)

const certificateBlockType = "CERTIFICATE"

var beginMarker = []byte("-----BEGIN ")

// Block is one decoded PEM block of a bundle.
type Block struct {
	Index int
	Type  string
	DER   []byte
	// Cert is nil when the block is not a certificate or fails to parse.
	Cert     *x509.Certificate
	ParseErr error
}

// Decode returns every PEM block in data, in order. Text between blocks is
// ignored the way OpenSSL ignores it (RHEL bundles carry comment headers).
// rest holds whatever follows the last complete block.
func Decode(data []byte) (blocks []Block, rest []byte) {
	rest = data
	for {
		var p *pem.Block
		p, rest = pem.Decode(rest)
		if p == nil {
			return blocks, rest
		}
		b := Block{
			Index: len(blocks),
			Type:  p.Type,
			DER:   p.Bytes,
		}
		if p.Type == certificateBlockType {
			b.Cert, b.ParseErr = x509.ParseCertificate(p.Bytes)
		}
		blocks = append(blocks, b)
	}
}

// CountBlocks returns the number of decodable PEM blocks in data.
func CountBlocks(data []byte) int {
	blocks, _ := Decode(data)
	return len(blocks)
}

// Validate checks that data is a well-formed certificate bundle: every block is
// a parseable CERTIFICATE inside its validity window at now, no BEGIN marker
// is left undecoded and nothing but whitespace follows the last block. path is
// only used for error reporting.
func Validate(path string, data []byte, now time.Time) ([]Block, error) {
	blocks, rest := Decode(data)
	if len(blocks) == 0 {
		return nil, errors.MalformedPEM(path, fmt.Errorf("no PEM blocks found"))
	}

	// pem.Decode skips a corrupt block and keeps scanning, so compare the
	// number of BEGIN markers with what actually decoded.
	if markers := bytes.Count(data, beginMarker); markers != len(blocks) {
		return nil, errors.MalformedPEM(path, fmt.Errorf("%d BEGIN markers but only %d decodable blocks", markers, len(blocks)))
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return nil, errors.MalformedPEM(path, fmt.Errorf("unexpected content after block %d", len(blocks)-1))
	}

	for _, b := range blocks {
		if b.Type != certificateBlockType {
			return nil, errors.MalformedPEM(path, fmt.Errorf("block %d has type %s, want %s", b.Index, b.Type, certificateBlockType))
		}
		if b.ParseErr != nil {
			return nil, errors.MalformedPEM(path, fmt.Errorf("block %d: %w", b.Index, b.ParseErr))
		}
		if now.After(b.Cert.NotAfter) {
			return nil, errors.Expired(path, fmt.Errorf("block %d (%s) expired at %s", b.Index, b.Cert.Subject, b.Cert.NotAfter.UTC().Format(time.RFC3339)))
		}
		if now.Before(b.Cert.NotBefore) {
			return nil, errors.Expired(path, fmt.Errorf("block %d (%s) is not valid before %s", b.Index, b.Cert.Subject, b.Cert.NotBefore.UTC().Format(time.RFC3339)))
		}
	}

	return blocks, nil
}

// ToPEM returns data as PEM. PEM input is returned unchanged; a single DER
// certificate is wrapped in a CERTIFICATE block.
func ToPEM(data []byte) ([]byte, error) {
	if blocks, _ := Decode(data); len(blocks) > 0 {
		return data, nil
	}
	if _, err := x509.ParseCertificate(data); err != nil {
		return nil, fmt.Errorf("content is neither PEM nor a DER certificate: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: certificateBlockType, Bytes: data}), nil
}
