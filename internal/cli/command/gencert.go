package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/infra/tlscert"
)

// GenCertCommand returns the gencert command.
func GenCertCommand() *cli.Command {
	return &cli.Command{
		Name:  "gencert",
		Usage: "write a self-signed certificate and key for local HTTPS",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cert", Value: "cert.pem", Usage: "certificate output file"},
			&cli.StringFlag{Name: "key", Value: "key.pem", Usage: "private key output file"},
			&cli.StringSliceFlag{
				Name:  "host",
				Value: cli.NewStringSlice("localhost", "127.0.0.1", "::1"),
				Usage: "DNS name or IP the certificate is valid for (repeatable)",
			},
			&cli.DurationFlag{Name: "valid-for", Value: 365 * 24 * time.Hour, Usage: "certificate lifetime"},
		},
		Action: runGenCert,
	}
}

func runGenCert(c *cli.Context) error {
	certFile, keyFile := c.String("cert"), c.String("key")
	hosts := c.StringSlice("host")

	if err := tlscert.WriteSelfSigned(certFile, keyFile, hosts, c.Duration("valid-for")); err != nil {
		return fmt.Errorf("generate certificate: %w", err)
	}
	printf(c, "wrote %s and %s for %v\n", certFile, keyFile, hosts)
	return nil
}
