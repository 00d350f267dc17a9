package csrf

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Protect wraps the given next http.Handler and enforces CSRF protection.
//
// Behavior:
//   - The identity resolver runs once per request.
//   - Write requests (per the WriteClassifier) optionally pass a same-site
//     Origin/Referer check, then must present a token, in the
//     header or the body field, whose signature matches the certificate
//     rebuilt from the current identity and that has not expired. Any failure
//     short-circuits with RejectStatus and RejectBody.
//   - Every request that gets this far and has a non-empty identity receives
//     a fresh token in its context for the next write.
//
// Params:
// - next: downstream handler, invoked exactly once unless the request is rejected.
//
// Returns:
// - An http.Handler that performs the CSRF logic before delegating to next.
func (p *Protector) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := p.cfg
		now := cfg.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// 1) resolve identity once for both verification and issuance
		id := cfg.IdentityResolver.ResolveIdentity(r)

		// 2) write requests must carry a valid token
		if cfg.WriteClassifier.IsWrite(r) {
			presented := extractClientToken(r, cfg.HeaderName, cfg.Attribute)
			var err error
			if cfg.EnforceOriginCheck {
				err = checkOrigin(r, cfg.AllowedOrigin)
			}
			if err == nil {
				err = p.verify(id, presented, now)
			}
			cfg.Metrics.observeVerification(err)
			p.logEvent(r, requestID, presented, err, now)
			if err != nil {
				p.reject(w)
				return
			}
		}

		ctx := WithRequestID(r.Context(), requestID)

		// 3) issue the token for the next cycle, unless anonymous
		tok, err := p.issue(id, now)
		switch {
		case err == nil:
			ctx = contextWithToken(ctx, tok)
			if cfg.ExposeHeader != "" {
				w.Header().Set(cfg.ExposeHeader, tok)
			}
			cfg.Metrics.observeIssued()
			logSecurityEvent(cfg.Logger, SecurityEvent{
				EventType: "issued",
				Timestamp: now,
				RequestID: requestID,
				Method:    r.Method,
				Path:      r.URL.Path,
				Token:     tok,
				Algorithm: cfg.Algorithm,
			})
		case errors.Is(err, ErrNoIdentity):
		default:
			if cfg.Logger != nil {
				cfg.Logger.Warn("csrf: token not issued", "request_id", requestID, "error", err)
			}
		}

		// 4) forward
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Issue signs a fresh token for id, valid for the configured TTL.
//
// Returns:
// - the token, or ErrNoIdentity for an empty identity, or ErrInvalidIdentity
//   when a component contains the separator.
func (p *Protector) Issue(id Identity) (string, error) {
	return p.issue(id, p.cfg.Now())
}

// Verify reports whether token is valid for id right now. It never says why
// a token is invalid.
func (p *Protector) Verify(id Identity, token string) bool {
	return p.verify(id, token, p.cfg.Now()) == nil
}

func (p *Protector) issue(id Identity, now time.Time) (string, error) {
	if id.Empty() {
		return "", ErrNoIdentity
	}
	expireAt := now.Unix() + int64(p.cfg.TTL/time.Second)
	sig, err := p.signature(id, expireAt)
	if err != nil {
		return "", err
	}
	return EncodeToken(expireAt, sig), nil
}

// verify checks the token against the certificate rebuilt from the current
// identity and the presented expiration. The signature is always compared,
// even for an expired token, so both outcomes take the same path.
func (p *Protector) verify(id Identity, token string, now time.Time) error {
	if token == "" {
		return ErrMissingToken
	}
	if id.Empty() {
		return ErrNoIdentity
	}
	expireAt, presented, err := DecodeToken(token)
	if err != nil {
		return err
	}
	expected, err := p.signature(id, expireAt)
	if err != nil {
		return err
	}
	valid := VerifySignature(expected, presented)
	live := expireAt > now.Unix()
	switch {
	case !valid:
		return ErrSignatureMismatch
	case !live:
		return ErrExpired
	}
	return nil
}

func (p *Protector) signature(id Identity, expireAt int64) (string, error) {
	cert, err := EncodeCertificate(id, expireAt)
	if err != nil {
		return "", err
	}
	return Sign(cert, p.secret, p.cfg.Algorithm)
}

// reject writes the fixed rejection response.
func (p *Protector) reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(p.cfg.RejectStatus)
	w.Write([]byte(p.cfg.RejectBody))
}

func (p *Protector) logEvent(r *http.Request, requestID, token string, err error, now time.Time) {
	event := SecurityEvent{
		EventType: "accepted",
		Timestamp: now,
		RequestID: requestID,
		Method:    r.Method,
		Path:      r.URL.Path,
		Token:     token,
		Algorithm: p.cfg.Algorithm,
	}
	if err != nil {
		event.EventType = "rejected"
		event.Reason = reason(err)
	}
	logSecurityEvent(p.cfg.Logger, event)
}

// TokenFromContext returns the CSRF token stored in ctx, if present.
//
// Params:
// - ctx: context potentially containing a token set by the middleware.
//
// Returns:
// - token (string) and a boolean indicating whether a token was found.
//   Anonymous requests have no token.
func TokenFromContext(ctx context.Context) (string, bool) {
	return tokenFromContext(ctx)
}

// TokenHandler returns an HTTP handler that writes the current CSRF token.
// This is useful for SPAs to fetch the token and attach it to subsequent requests.
//
// Returns:
// - http.Handler that responds with the token in the response body (text/plain),
//   or 401 when the caller is anonymous and no token was issued.
func (p *Protector) TokenHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok, ok := TokenFromContext(r.Context()); ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			w.Write([]byte(tok))
			return
		}
		http.Error(w, "no token", http.StatusUnauthorized)
	})
}

// TemplateField returns a hidden form input carrying the current token, for
// use in html/template. It is empty when the request has no token.
func (p *Protector) TemplateField(r *http.Request) template.HTML {
	tok, ok := TokenFromContext(r.Context())
	if !ok {
		return ""
	}
	return template.HTML(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
		template.HTMLEscapeString(p.cfg.Attribute), template.HTMLEscapeString(tok)))
}
