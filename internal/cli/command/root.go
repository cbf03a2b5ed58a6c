package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/cli/output"
	"github.com/yndnr/featherserve-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:           "featherserve",
		Usage:          "serve a static site from memory over HTTP and HTTPS",
		Version:        buildinfo.String(),
		Flags:          globalFlags(),
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			ServeCommand(),
			RoutesCommand(),
			CheckCommand(),
			GenCertCommand(),
			VersionCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML configuration file",
			EnvVars: []string{"FEATHERSERVE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format for reports: table, json, yaml",
			Value:   "table",
		},
	}
}

// render writes data to the app's writer in the format chosen by --output.
func render(c *cli.Context, data any) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	return c.App.Writer
}

func printf(c *cli.Context, format string, args ...any) {
	fmt.Fprintf(writer(c), format, args...)
}
