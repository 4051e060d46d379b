package bundle

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
	"trustpack/errors"
	"trustpack/system/file"
)

type Entry struct {
	Index       int
	Type        string
	Subject     string
	Issuer      string
	Serial      string
	NotBefore   time.Time
	NotAfter    time.Time
	IsCA        bool
	Fingerprint string
	Err         error
}

// Expired reports whether the entry is a certificate outside its validity
// window at now.
func (e *Entry) Expired(now time.Time) bool {
	if e.Type != certificateBlockType || e.Err != nil {
		return false
	}
	return now.After(e.NotAfter) || now.Before(e.NotBefore)
}

type Report struct {
	Path    string
	Bytes   int
	Entries []Entry
}

func (r *Report) Certificates() int {
	n := 0
	for _, e := range r.Entries {
		if e.Type == certificateBlockType && e.Err == nil {
			n++
		}
	}
	return n
}

func (r *Report) CAs() int {
	n := 0
	for _, e := range r.Entries {
		if e.IsCA {
			n++
		}
	}
	return n
}

func (r *Report) ExpiredCount(now time.Time) int {
	n := 0
	for i := range r.Entries {
		if r.Entries[i].Expired(now) {
			n++
		}
	}
	return n
}

// Inspect decodes the bundle at path and describes each block. Blocks that
// fail to parse are reported with Err set instead of failing the inspection.
func Inspect(path string) (*Report, error) {
	data, err := file.ReadFile(path)
	if err != nil {
		return nil, errors.SourceUnavailable(path, err)
	}

	blocks, _ := Decode(data)
	report := &Report{
		Path:    path,
		Bytes:   len(data),
		Entries: make([]Entry, 0, len(blocks)),
	}
	for _, b := range blocks {
		e := Entry{
			Index:       b.Index,
			Type:        b.Type,
			Fingerprint: Fingerprint(b.DER),
			Err:         b.ParseErr,
		}
		if b.Cert != nil {
			e.Subject = b.Cert.Subject.String()
			e.Issuer = b.Cert.Issuer.String()
			e.Serial = b.Cert.SerialNumber.String()
			e.NotBefore = b.Cert.NotBefore
			e.NotAfter = b.Cert.NotAfter
			e.IsCA = b.Cert.IsCA
		}
		report.Entries = append(report.Entries, e)
	}

	return report, nil
}

// Verify applies the strict bundle checks to a single file.
func Verify(path string, now time.Time) error {
	data, err := file.ReadFile(path)
	if err != nil {
		return errors.SourceUnavailable(path, err)
	}
	_, err = Validate(path, data, now)
	return err
}

// Fingerprint returns the colon separated upper-case SHA-256 of der.
func Fingerprint(der []byte) string {
	sum := sha256.Sum256(der)
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}
