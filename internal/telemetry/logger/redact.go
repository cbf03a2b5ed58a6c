package logger

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"bearer",
	"private",
}

// Keys whose values come from the client and are logged verbatim
// otherwise.
var untrustedKeys = map[string]bool{
	"path":       true,
	"remote":     true,
	"request":    true,
	"user_agent": true,
}

// MaxUntrustedLen caps the logged length of client-supplied values.
const MaxUntrustedLen = 256

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if untrustedKeys[a.Key] {
			return slog.String(a.Key, Sanitize(strVal))
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// Sanitize makes a client-supplied string safe to log.
//
// Control characters, invalid UTF-8 and quotes are escaped in Go syntax
// and the result is truncated to MaxUntrustedLen bytes, marked with
// a trailing "...".
func Sanitize(s string) string {
	if needsEscape(s) {
		q := strconv.Quote(s)
		s = q[1 : len(q)-1]
	}
	if len(s) <= MaxUntrustedLen {
		return s
	}
	cut := MaxUntrustedLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return true
		}
		if r < 0x20 || r == 0x7f || r == '"' || r == '\\' {
			return true
		}
		i += size
	}
	return false
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
