package staticserver

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/yndnr/featherserve-go/internal/core/domain"
	"github.com/yndnr/featherserve-go/internal/core/service"
	"github.com/yndnr/featherserve-go/internal/telemetry/logger"
)

// maxPooledWriteBuf keeps large responses from pinning memory in the pool.
const maxPooledWriteBuf = 256 << 10

var (
	readBufPool = sync.Pool{New: func() any {
		b := make([]byte, domain.MaxRequestSize)
		return &b
	}}
	writeBufPool = sync.Pool{New: func() any {
		b := make([]byte, 0, 16<<10)
		return &b
	}}
)

// serveConn answers exactly one request and closes the connection.
// Nothing is written back for empty or malformed requests.
func (s *Server) serveConn(j job) {
	s.metrics.ConnectionsActive.Inc()
	defer s.metrics.ConnectionsActive.Dec()

	log := logger.L(j.ctx).With("remote", j.conn.RemoteAddr().String())
	defer func() {
		if r := recover(); r != nil {
			log.Error("connection handler panic", "panic", r)
		}
	}()

	if tc, ok := j.conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	stream := j.ln.wrap(j.conn)
	defer stream.Close()

	if err := stream.SetDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
		return
	}

	if tc, ok := stream.(*tls.Conn); ok {
		if err := tc.Handshake(); err != nil {
			s.metrics.HandshakeFailures.Inc()
			log.Debug("tls handshake failed", "error", err)
			return
		}
	}

	rb := readBufPool.Get().(*[]byte)
	defer readBufPool.Put(rb)

	n, err := stream.Read(*rb)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			log.Debug("read failed", "error", err)
		}
		return
	}

	req, err := domain.ParseRequest((*rb)[:n])
	if err != nil {
		s.metrics.BadRequests.Inc()
		log.Debug("dropping malformed request", "error", err)
		return
	}

	resp, res := s.handler.Handle(req)

	wb := writeBufPool.Get().(*[]byte)
	out := resp.AppendTo((*wb)[:0])

	_ = stream.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	written, err := stream.Write(out)

	if cap(out) <= maxPooledWriteBuf {
		*wb = out[:0]
		writeBufPool.Put(wb)
	}

	elapsed := time.Since(j.accepted)
	s.metrics.RecordRequest(res.Kind.String(), elapsed.Seconds(), written)

	if err != nil {
		log.Debug("write failed", "path", req.Path, "written", written, "error", err)
		return
	}

	if res.Kind == service.Deceive {
		s.metrics.RecordHoneypot(res.Category.String())
		log.Warn("probe answered with decoy",
			"method", req.Method,
			"path", req.Path,
			"category", res.Category.String(),
		)
		return
	}

	log.Debug("request served",
		"method", req.Method,
		"path", req.Path,
		"status", resp.Status.Code(),
		"gzip", resp.Gzip,
		"bytes", written,
		"duration", elapsed,
	)
}
