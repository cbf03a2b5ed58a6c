package staticserver

import (
	"crypto/tls"
	"net"
	"sync"
)

// listener is one bound endpoint. TLS is applied per connection inside a
// worker so the accept loop never blocks on a handshake.
type listener struct {
	ln        net.Listener
	addr      string
	tlsConfig *tls.Config

	closeOnce sync.Once
	closeErr  error
}

func listen(b Bind) (*listener, error) {
	ln, err := net.Listen("tcp", b.Addr)
	if err != nil {
		return nil, err
	}
	return &listener{
		ln:        ln,
		addr:      ln.Addr().String(),
		tlsConfig: b.TLS,
	}, nil
}

func (l *listener) scheme() string {
	if l.tlsConfig != nil {
		return "https"
	}
	return "http"
}

// wrap returns the stream the worker reads from and writes to.
func (l *listener) wrap(c net.Conn) net.Conn {
	if l.tlsConfig == nil {
		return c
	}
	return tls.Server(c, l.tlsConfig)
}

func (l *listener) close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.ln.Close()
	})
	return l.closeErr
}
