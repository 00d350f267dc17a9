package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JeanGrijp/go-csrf/v2/csrf"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if cfg.HTTP.SessionCookie == "" {
		return errors.New("http.session_cookie is required")
	}
	if cfg.CSRF.Secret == "" {
		return errors.New("csrf.secret is required")
	}
	if _, err := csrf.ParseAlgorithm(cfg.CSRF.Algorithm); err != nil {
		return fmt.Errorf("csrf.algorithm: %w", err)
	}
	if cfg.CSRF.TTL < 0 {
		return errors.New("csrf.ttl must not be negative")
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Log.Format)
	}
	return nil
}

// ProtectorConfig converts the csrf section into a csrf.Config. The
// identity resolver is left to the caller.
func (c *Config) ProtectorConfig(logger *slog.Logger, metrics *csrf.Metrics) (csrf.Config, error) {
	alg, err := csrf.ParseAlgorithm(c.CSRF.Algorithm)
	if err != nil {
		return csrf.Config{}, err
	}

	pc := csrf.Config{
		Secret:          []byte(c.CSRF.Secret),
		Algorithm:       alg,
		TTL:             c.CSRF.TTL,
		Attribute:       c.CSRF.Attribute,
		HeaderName:      c.CSRF.HeaderName,
		ExposeHeader:    c.CSRF.ExposeHeader,
		ReadOnlyMethods: c.CSRF.ReadOnlyMethods,
		RejectStatus:    c.CSRF.RejectStatus,
		RejectBody:      c.CSRF.RejectBody,
		Logger:          logger,
		Metrics:         metrics,

		EnforceOriginCheck: c.CSRF.EnforceOriginCheck,
		AllowedOrigin:      c.CSRF.AllowedOrigin,
	}
	if len(c.CSRF.ExemptPaths) > 0 {
		pc.WriteClassifier = csrf.ExemptPaths(csrf.MethodClassifier(c.CSRF.ReadOnlyMethods...), c.CSRF.ExemptPaths...)
	}
	return pc, nil
}

// Sanitized returns a copy safe for logging.
func (c *Config) Sanitized() Config {
	out := *c
	if out.CSRF.Secret != "" {
		out.CSRF.Secret = "******"
	}
	return out
}
