package config

// BindSpec is one address to listen on.
type BindSpec struct {
	Addr     string
	CertFile string
	KeyFile  string
}

// TLS reports whether the listener terminates TLS.
func (b BindSpec) TLS() bool {
	return b.CertFile != "" && b.KeyFile != ""
}

// BindSpecs flattens the plain, HTTPS and extra listener settings into
// one list, in that order.
func (cfg *ServerConfig) BindSpecs() []BindSpec {
	var specs []BindSpec

	if cfg.Server.HTTP.Addr != "" {
		specs = append(specs, BindSpec{Addr: cfg.Server.HTTP.Addr})
	}
	if cfg.Server.HTTPS.Enabled {
		specs = append(specs, BindSpec{
			Addr:     cfg.Server.HTTPS.Addr,
			CertFile: cfg.Server.HTTPS.Cert,
			KeyFile:  cfg.Server.HTTPS.Key,
		})
	}
	for _, l := range cfg.Server.Listeners {
		specs = append(specs, BindSpec{
			Addr:     l.Addr,
			CertFile: l.Cert,
			KeyFile:  l.Key,
		})
	}

	return specs
}
