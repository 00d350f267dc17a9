package csrf

import "errors"

// Verification errors. None of these reach the client: every one of them
// produces the same rejection response. They exist for logs and metrics.
var (
	ErrMissingToken      = errors.New("csrf: missing token")
	ErrMalformedToken    = errors.New("csrf: malformed token")
	ErrSignatureMismatch = errors.New("csrf: signature mismatch")
	ErrExpired           = errors.New("csrf: token expired")
	ErrInvalidIdentity   = errors.New("csrf: identity component contains separator")
	ErrBadOrigin         = errors.New("csrf: origin not allowed")

	// ErrNoIdentity is returned by Issue when the resolver yields nothing.
	// The middleware treats it as "anonymous, no forward token", not a failure.
	ErrNoIdentity = errors.New("csrf: no identity")
)

// Construction errors, returned by New.
var (
	ErrEmptySecret          = errors.New("csrf: secret must not be empty")
	ErrNoResolver           = errors.New("csrf: identity resolver is required")
	ErrUnsupportedAlgorithm = errors.New("csrf: unsupported algorithm")
	ErrInvalidTTL           = errors.New("csrf: ttl must be positive")
	ErrInvalidStatus        = errors.New("csrf: reject status must be a 4xx or 5xx code")
)

// reason maps a verification error to a short label for logs and metrics.
func reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrSignatureMismatch):
		return "signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidIdentity):
		return "identity"
	case errors.Is(err, ErrNoIdentity):
		return "anonymous"
	case errors.Is(err, ErrBadOrigin):
		return "origin"
	default:
		return "unknown"
	}
}
