// Package bundle composes, inspects and verifies concatenated PEM trust
// bundles.
package bundle

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"trustpack/errors"
	"trustpack/system/file"
)

const bundleFileMode = 0644

type Composer struct {
	SystemBundlePath string
	IntermediatePath string
	OutputPath       string
	// Strict parses and validates every certificate before writing.
	Strict bool
	Now    func() time.Time
}

type Result struct {
	OutputPath         string
	Bytes              int
	SystemBlocks       int
	IntermediateBlocks int
}

func NewComposer(systemBundlePath, intermediatePath, outputPath string) *Composer {
	return &Composer{
		SystemBundlePath: systemBundlePath,
		IntermediatePath: intermediatePath,
		OutputPath:       outputPath,
		Now:              time.Now,
	}
}

// ComposeBundle writes the system bundle followed by the intermediate to
// outputPath without validating either input.
func ComposeBundle(systemBundlePath, intermediatePath, outputPath string) (*Result, error) {
	return NewComposer(systemBundlePath, intermediatePath, outputPath).Compose()
}

// Compose reads both sources in full before touching the output, so a missing
// source never creates or modifies OutputPath.
func (c *Composer) Compose() (*Result, error) {
	slog.Info("Composing CA bundle " + c.OutputPath)
	slog.Debug("System bundle: " + c.SystemBundlePath + ", intermediate: " + c.IntermediatePath)

	system, err := readSource(c.SystemBundlePath, true)
	if err != nil {
		return nil, err
	}
	intermediate, err := readSource(c.IntermediatePath, false)
	if err != nil {
		return nil, err
	}

	if c.Strict {
		if err := c.validate(system, intermediate); err != nil {
			return nil, err
		}
	}

	combined := make([]byte, 0, len(system)+len(intermediate))
	combined = append(combined, system...)
	combined = append(combined, intermediate...)

	res := &Result{
		OutputPath:         c.OutputPath,
		Bytes:              len(combined),
		SystemBlocks:       CountBlocks(system),
		IntermediateBlocks: CountBlocks(intermediate),
	}

	if res.IntermediateBlocks == 0 {
		slog.Warn("Intermediate " + c.IntermediatePath + " contains no PEM blocks, the bundle will not trust it")
	}
	if system[len(system)-1] != '\n' && len(intermediate) > 0 {
		slog.Warn("System bundle " + c.SystemBundlePath + " does not end with a newline, the first intermediate block may be unreadable")
	}

	if c.Strict {
		if got, want := CountBlocks(combined), res.SystemBlocks+res.IntermediateBlocks; got != want {
			return nil, errors.MalformedPEM(c.OutputPath, fmt.Errorf("composed bundle decodes to %d blocks, want %d (missing newline at end of %s?)", got, want, c.SystemBundlePath))
		}
	}

	if err := file.WriteFileAtomic(c.OutputPath, combined, bundleFileMode); err != nil {
		return nil, errors.WriteFailure(c.OutputPath, err)
	}

	slog.Info("CA bundle written to " + c.OutputPath + " (" + strconv.Itoa(res.SystemBlocks+res.IntermediateBlocks) + " blocks, " + strconv.Itoa(res.Bytes) + " bytes)")
	return res, nil
}

func (c *Composer) validate(system, intermediate []byte) error {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	if _, err := Validate(c.SystemBundlePath, system, now); err != nil {
		return err
	}
	blocks, err := Validate(c.IntermediatePath, intermediate, now)
	if err != nil {
		return err
	}
	if len(blocks) != 1 {
		return errors.MalformedPEM(c.IntermediatePath, fmt.Errorf("expected exactly one certificate, found %d", len(blocks)))
	}
	if !blocks[0].Cert.IsCA {
		return errors.MalformedPEM(c.IntermediatePath, fmt.Errorf("certificate %s is not a CA", blocks[0].Cert.Subject))
	}
	return nil
}

func readSource(path string, requireNonEmpty bool) ([]byte, error) {
	if path == "" {
		return nil, errors.SourceUnavailable(path, fmt.Errorf("no path given"))
	}
	data, err := file.ReadFile(path)
	if err != nil {
		return nil, errors.SourceUnavailable(path, err)
	}
	if requireNonEmpty && len(data) == 0 {
		return nil, errors.SourceUnavailable(path, fmt.Errorf("file is empty"))
	}
	return data, nil
}
