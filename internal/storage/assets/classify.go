package assets

import "path"

// Content types produced by ContentType.
const (
	TypeHTML       = "text/html"
	TypeCSS        = "text/css"
	TypeJavaScript = "application/javascript"
	TypeJSON       = "application/json"
	TypeSVG        = "image/svg+xml"
	TypePNG        = "image/png"
	TypeJPEG       = "image/jpeg"
	TypeWebP       = "image/webp"
	TypeIcon       = "image/x-icon"
	TypeWOFF       = "font/woff"
	TypeWOFF2      = "font/woff2"
	TypeText       = "text/plain; charset=utf-8"
	TypeBinary     = "application/octet-stream"
)

// Cache-Control policies produced by CacheControl.
const (
	PolicyStatic = "public, max-age=300, must-revalidate"
	PolicyHTML   = "no-cache, must-revalidate"
)

// ContentType maps a file name to its content type by extension.
// Unknown extensions map to application/octet-stream.
func ContentType(name string) string {
	switch ext(name) {
	case "html":
		return TypeHTML
	case "css":
		return TypeCSS
	case "js":
		return TypeJavaScript
	case "json":
		return TypeJSON
	case "svg":
		return TypeSVG
	case "png":
		return TypePNG
	case "jpg", "jpeg":
		return TypeJPEG
	case "webp":
		return TypeWebP
	case "ico":
		return TypeIcon
	case "woff":
		return TypeWOFF
	case "woff2":
		return TypeWOFF2
	case "asc":
		return TypeText
	default:
		return TypeBinary
	}
}

// CacheControl returns the Cache-Control policy for a file name,
// or "" when no header should be sent.
func CacheControl(name string) string {
	switch ext(name) {
	case "css", "js", "png", "jpg", "jpeg", "webp", "ico", "svg", "woff", "woff2":
		return PolicyStatic
	case "html":
		return PolicyHTML
	default:
		return ""
	}
}

// Compressible reports whether bodies of the given content type are
// stored with a precomputed gzip variant.
func Compressible(contentType string) bool {
	switch contentType {
	case TypeHTML, TypeCSS, TypeText, TypeJavaScript, TypeJSON, TypeSVG:
		return true
	default:
		return false
	}
}

// ext returns the extension of name without the leading dot.
// Dotfiles such as ".env" have no extension.
func ext(name string) string {
	base := path.Base(name)
	e := path.Ext(base)
	if e == "" || e == base {
		return ""
	}
	return e[1:]
}
