// Package csrf provides stateless, identity-bound CSRF protection.
package csrf

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Defaults applied by New.
const (
	DefaultAttribute  = "csrf"
	DefaultHeaderName = "X-CSRF-Token"
	DefaultTTL        = 20 * time.Minute
	DefaultRejectBody = "Invalid or missing CSRF token!"
)

type Config struct {
	// Signing
	Secret    []byte    // required
	Algorithm Algorithm // default: RIPEMD160 (weak, prefer SHA256)
	TTL       time.Duration

	// Token transport
	Attribute    string // body field and context attribute, e.g.: "csrf"
	HeaderName   string // e.g.: "X-CSRF-Token"
	ExposeHeader string // if set, each issued token is also sent as this response header

	// Policy
	IdentityResolver IdentityResolver // required
	WriteClassifier  WriteClassifier  // if nil, uses MethodClassifier(ReadOnlyMethods...)
	ReadOnlyMethods  []string         // default: HEAD, GET, OPTIONS

	// Extra security: same-site Origin/Referer check on write requests
	EnforceOriginCheck bool
	AllowedOrigin      string // if empty, uses r.Host

	// Rejection
	RejectStatus int
	RejectBody   string

	// Observability, both optional
	Logger  *slog.Logger
	Metrics *Metrics

	// Now returns the current time; tests override it.
	Now func() time.Time
}

type Protector struct {
	cfg    Config
	secret []byte
}

// New validates cfg, applies defaults and returns a ready Protector.
// Misconfiguration is reported here, never at request time.
func New(cfg Config) (*Protector, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	if cfg.IdentityResolver == nil {
		return nil, ErrNoResolver
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	if !cfg.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(cfg.Algorithm))
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TTL < time.Second {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTTL, cfg.TTL)
	}
	if cfg.Attribute == "" {
		cfg.Attribute = DefaultAttribute
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}
	if len(cfg.ReadOnlyMethods) == 0 {
		cfg.ReadOnlyMethods = DefaultReadOnlyMethods
	}
	if cfg.WriteClassifier == nil {
		cfg.WriteClassifier = MethodClassifier(cfg.ReadOnlyMethods...)
	}
	if cfg.RejectStatus == 0 {
		cfg.RejectStatus = http.StatusForbidden
	}
	if cfg.RejectStatus < 400 || cfg.RejectStatus > 599 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, cfg.RejectStatus)
	}
	if cfg.RejectBody == "" {
		cfg.RejectBody = DefaultRejectBody
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Logger != nil && cfg.Algorithm.Weak() {
		cfg.Logger.Warn("csrf: weak signing algorithm configured, prefer sha256",
			"algorithm", cfg.Algorithm.String())
	}

	// private copy so later mutation of the caller's slice has no effect
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	cfg.Secret = nil

	return &Protector{cfg: cfg, secret: secret}, nil
}

// Attribute returns the configured attribute name.
func (p *Protector) Attribute() string { return p.cfg.Attribute }

// TTL returns the configured token lifetime.
func (p *Protector) TTL() time.Duration { return p.cfg.TTL }

// Algorithm returns the configured signing algorithm.
func (p *Protector) Algorithm() Algorithm { return p.cfg.Algorithm }
