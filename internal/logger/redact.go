package logger

import (
	"log/slog"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveKeys are attribute keys whose values are never written out.
// The csrf package already shortens the "token" attribute of its events;
// anything else that looks like a credential is dropped entirely.
var sensitiveKeys = map[string]bool{
	"secret":        true,
	"password":      true,
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-csrf-token":  true,
}

func redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, redacted)
	}
	return a
}
