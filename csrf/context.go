package csrf

import "context"

type ctxKey string

const (
	tokenKey     ctxKey = "csrf_token_ctx"
	requestIDKey ctxKey = "csrf_request_id_ctx"
)

// contextWithToken returns a derived context that stores the given CSRF token.
//
// Params:
// - ctx: base context to attach the token to.
// - tok: signed token string to store.
//
// Returns:
// - a new context containing the token.
func contextWithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, tokenKey, tok)
}

// tokenFromContext extracts the CSRF token from ctx, if present.
//
// Params:
// - ctx: context possibly containing the token.
//
// Returns:
// - token (string) and a boolean indicating presence.
func tokenFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(tokenKey).(string)
	return s, ok && s != ""
}

// WithRequestID stores a correlation id used in security events.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation id set by Protect.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
