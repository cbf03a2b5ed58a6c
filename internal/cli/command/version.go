package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/cli/output"
	"github.com/yndnr/featherserve-go/internal/infra/buildinfo"
)

// versionView renders build information as a field table.
type versionView buildinfo.Info

func (v versionView) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("version", v.Version)
	t.AddRow("commit", v.Commit)
	t.AddRow("built", v.BuildTime)
	t.AddRow("go", v.GoVersion)
	t.AddRow("platform", v.Platform)
	return t
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print build information",
		Action: func(c *cli.Context) error {
			return render(c, versionView(buildinfo.Get()))
		},
	}
}
