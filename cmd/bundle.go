package cmd

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"trustpack/bundle"
	"trustpack/config"
	"trustpack/errors"
	"trustpack/system"
	"trustpack/trust"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

var getLocalSystem = system.GetLocalSystem

func loadManifest(cCtx *cli.Context) (*config.Manifest, error) {
	return config.Load(cCtx.String("config"), cCtx.IsSet("config"))
}

// systemBundle resolves the base bundle from the flag, then the manifest,
// then SSL_CERT_FILE and the detected distribution. An unsupported
// distribution still gets the well-known bundle locations searched.
func systemBundle(cCtx *cli.Context, m *config.Manifest) (string, error) {
	if p := stringOr(cCtx, "system-bundle", m.SystemBundle); p != "" {
		return p, nil
	}
	if p, ok, err := trust.EnvSystemBundle(); err != nil || ok {
		return p, err
	}
	l, err := getLocalSystem()
	if err != nil {
		var unsupported *errors.UnsupportedOSError
		if !stderrors.As(err, &unsupported) {
			return "", err
		}
		slog.Debug(err.Error() + ", searching well-known CA bundle locations")
		l = &system.LocalSystem{Vendor: unsupported.Vendor, Version: unsupported.Version}
	}
	return l.SystemBundlePath()
}

func BundleCompose(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}
	sb, err := systemBundle(cCtx, m)
	if err != nil {
		return err
	}

	c := bundle.NewComposer(
		sb,
		stringOr(cCtx, "intermediate", m.Intermediate.Path),
		stringOr(cCtx, "output", m.Output),
	)
	c.Strict = boolOr(cCtx, "strict", m.Strict)

	res, err := c.Compose()
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Composed %s: %d system + %d intermediate block(s), %d bytes",
		res.OutputPath, res.SystemBlocks, res.IntermediateBlocks, res.Bytes)
	return nil
}

func BundleInspect(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}
	path := stringOr(cCtx, "bundle", m.Output)

	report, err := bundle.Inspect(path)
	if err != nil {
		return err
	}

	now := time.Now()
	data := pterm.TableData{{"#", "Type", "Subject", "Issuer", "Not After", "CA", "SHA-256"}}
	for i := range report.Entries {
		e := &report.Entries[i]
		if e.Err != nil {
			data = append(data, []string{strconv.Itoa(e.Index), e.Type, "error: " + e.Err.Error(), "", "", "", shortFingerprint(e.Fingerprint)})
			continue
		}
		notAfter := ""
		if !e.NotAfter.IsZero() {
			notAfter = e.NotAfter.UTC().Format(time.DateOnly)
			if e.Expired(now) {
				notAfter = pterm.Red(notAfter + " (expired)")
			}
		}
		data = append(data, []string{
			strconv.Itoa(e.Index),
			e.Type,
			e.Subject,
			e.Issuer,
			notAfter,
			strconv.FormatBool(e.IsCA),
			shortFingerprint(e.Fingerprint),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return fmt.Errorf("failed to render bundle report: %w", err)
	}
	pterm.Info.Printfln("%s: %d block(s), %d certificate(s), %d CA(s), %d expired, %d bytes",
		report.Path, len(report.Entries), report.Certificates(), report.CAs(), report.ExpiredCount(now), report.Bytes)
	return nil
}

func BundleVerify(cCtx *cli.Context) error {
	m, err := loadManifest(cCtx)
	if err != nil {
		return err
	}
	path := stringOr(cCtx, "bundle", m.Output)

	if err := bundle.Verify(path, time.Now()); err != nil {
		return err
	}
	pterm.Success.Println(path + " is a valid certificate bundle")
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) <= 23 {
		return fp
	}
	return fp[:23] + "..."
}
