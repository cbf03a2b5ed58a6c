package service

import (
	"github.com/yndnr/featherserve-go/internal/core/domain"
)

const (
	fallbackContentType = "text/plain"
	deceptionType       = "text/plain"
)

var fallbackBody = []byte("Not Found")

// Handler builds the response for a parsed request.
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a handler serving from source.
func NewHandler(source Source) *Handler {
	return &Handler{resolver: NewResolver(source)}
}

// Handle resolves the request path and builds the response.
//
// The returned body aliases cached or static buffers and must not be
// modified. The resolution is returned for logging and metrics.
func (h *Handler) Handle(req domain.Request) (domain.Response, Resolution) {
	res := h.resolver.Resolve(req.Path)

	switch res.Kind {
	case Deceive:
		return domain.Response{
			Status:      domain.StatusOK,
			ContentType: deceptionType,
			Body:        DeceptionBody(res.Category),
		}, res

	case Serve:
		return build(domain.StatusOK, res, req.AcceptsGzip), res

	default:
		if res.Entry == nil {
			return domain.Response{
				Status:      domain.StatusNotFound,
				ContentType: fallbackContentType,
				Body:        fallbackBody,
			}, res
		}
		return build(domain.StatusNotFound, res, req.AcceptsGzip), res
	}
}

func build(status domain.Status, res Resolution, acceptsGzip bool) domain.Response {
	e := res.Entry
	resp := domain.Response{
		Status:       status,
		ContentType:  e.ContentType,
		Body:         e.Body,
		CacheControl: e.CacheControl,
	}
	if acceptsGzip && e.HasGzip() {
		resp.Body = e.Gzip
		resp.Gzip = true
	}
	return resp
}
