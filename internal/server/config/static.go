package config

import (
	"crypto/tls"
	"fmt"

	"github.com/yndnr/featherserve-go/internal/server/staticserver"
)

// CertSource builds TLS configurations for certificate/key file pairs.
// *tlscert.Set satisfies it.
type CertSource interface {
	Config(certFile, keyFile string) (*tls.Config, error)
}

// ToStaticConfig converts the server section into a staticserver.Config.
// TLS binds get their configuration from certs, which may be nil when no
// bind terminates TLS.
func ToStaticConfig(cfg *ServerConfig, certs CertSource) (staticserver.Config, error) {
	sc := staticserver.Config{
		Workers:       cfg.Server.Workers,
		QueueSize:     cfg.Server.Queue,
		ReadTimeout:   cfg.Server.Timeouts.Read,
		WriteTimeout:  cfg.Server.Timeouts.Write,
		SubmitTimeout: cfg.Server.Timeouts.Submit,
		RateLimit:     cfg.Server.RateLimit.Rate,
		RateBurst:     cfg.Server.RateLimit.Burst,
	}

	for _, spec := range cfg.BindSpecs() {
		b := staticserver.Bind{Addr: spec.Addr}
		if spec.TLS() {
			if certs == nil {
				return staticserver.Config{}, fmt.Errorf("%w: %s needs TLS but no certificate source was given", ErrInvalid, spec.Addr)
			}
			tc, err := certs.Config(spec.CertFile, spec.KeyFile)
			if err != nil {
				return staticserver.Config{}, fmt.Errorf("tls for %s: %w", spec.Addr, err)
			}
			b.TLS = tc
		}
		sc.Binds = append(sc.Binds, b)
	}

	return sc, nil
}
