package config

import (
	"time"

	"github.com/JeanGrijp/go-csrf/v2/csrf"
)

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:8080"
	DefaultShutdownTimeout = 15 * time.Second
	DefaultSessionCookie   = "session"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration. The secret is intentionally
// left empty: it must come from the file or CSRFD_CSRF_SECRET.
func Default() *Config {
	return &Config{
		HTTP: HTTPSection{
			Addr:            DefaultHTTPAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
			SessionCookie:   DefaultSessionCookie,
		},
		CSRF: CSRFSection{
			Algorithm:    string(csrf.SHA256),
			TTL:          csrf.DefaultTTL,
			Attribute:    csrf.DefaultAttribute,
			HeaderName:   csrf.DefaultHeaderName,
			RejectStatus: 403,
			RejectBody:   csrf.DefaultRejectBody,
			ExemptPaths:  []string{"/login"},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
