package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/cli/output"
	"github.com/yndnr/featherserve-go/internal/infra/tlscert"
	"github.com/yndnr/featherserve-go/internal/storage/assets"
)

// ErrCheckFailed is returned when check finds a problem.
var ErrCheckFailed = errors.New("configuration check failed")

// CheckItem is one line of the check report.
type CheckItem struct {
	Check  string `json:"check" yaml:"check"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail" yaml:"detail"`
}

// CheckReport is the result of the check command.
type CheckReport []CheckItem

// Table implements output.Tabler.
func (r CheckReport) Table() *output.Table {
	t := output.NewTable("CHECK", "STATUS", "DETAIL")
	for _, it := range r {
		status := "ok"
		if !it.OK {
			status = "FAIL"
		}
		t.AddRow(it.Check, status, it.Detail)
	}
	return t
}

func (r CheckReport) failed() bool {
	for _, it := range r {
		if !it.OK {
			return true
		}
	}
	return false
}

// CheckCommand returns the check command.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "validate configuration, site tree and certificates without serving",
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	cfg, loader, err := loadConfigFrom(c.String("config"), nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	report := CheckReport{{Check: "config", OK: true, Detail: describeSource(loader)}}

	cache := assets.Load(cfg.Static.Root)
	stats := cache.Stats()
	report = append(report, CheckItem{
		Check:  "site",
		OK:     stats.Files > 0,
		Detail: fmt.Sprintf("%s: %d files, %d routes, %d bytes", cfg.Static.Root, stats.Files, stats.Routes, stats.Bytes),
	})
	notFound := CheckItem{Check: "404 page", OK: true, Detail: "404.html"}
	if _, ok := cache.NotFound(); !ok {
		notFound.Detail = "built-in fallback"
	}
	report = append(report, notFound)

	for _, spec := range cfg.BindSpecs() {
		if !spec.TLS() {
			continue
		}
		item := CheckItem{Check: "tls " + spec.Addr, OK: true}
		cert, err := tlscert.LoadKeyPair(spec.CertFile, spec.KeyFile)
		if err != nil {
			item.OK = false
			item.Detail = err.Error()
		} else {
			item.Detail = fmt.Sprintf("%s, expires %s", cert.Leaf.Subject.CommonName, cert.Leaf.NotAfter.Format("2006-01-02"))
		}
		report = append(report, item)
	}

	if err := render(c, report); err != nil {
		return err
	}
	if report.failed() {
		return ErrCheckFailed
	}
	return nil
}
