// Package csrf provides stateless CSRF protection for Go net/http servers
// using signed, identity-bound, expiring tokens.
//
// How it works
//   - A token is "expireAt:signature", where signature is an HMAC, under a
//     server secret, of the caller's identity components followed by expireAt.
//     Nothing is stored server-side.
//   - Read-only methods (HEAD, GET, OPTIONS by default) are never verified. Each
//     request with a known identity gets a fresh token in its context, valid
//     for the next write, which handlers read via TokenFromContext.
//   - Other methods must present a token in the X-CSRF-Token header or the
//     "csrf" body field. The certificate is rebuilt from the identity resolved
//     for the current request, so a token minted for one principal never
//     verifies for another. Signatures are compared in constant time and a
//     token is only valid while expireAt is strictly in the future.
//   - Every failure yields the same 403 "Invalid or missing CSRF token!"
//     response; the reason is only visible in server-side logs and metrics.
//
// # Configuration
//
// All behavior is driven by Config. Key fields include:
//   - Secret (required) and IdentityResolver (required)
//   - Algorithm (default: ripemd160 for compatibility; use SHA256)
//   - TTL (default: 20 minutes)
//   - Attribute (default: "csrf"), HeaderName (default: "X-CSRF-Token"), ExposeHeader
//   - ReadOnlyMethods or a custom WriteClassifier, e.g. ExemptPaths for a login form
//   - RejectStatus (default: 403) and RejectBody
//   - Logger (*slog.Logger) and Metrics (Prometheus)
//
// Typical usage
//
//	p, err := csrf.New(csrf.Config{
//	    Secret:           secret,
//	    Algorithm:        csrf.SHA256,
//	    IdentityResolver: csrf.CookieIdentity("session"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", p.Protect(appMux))
//
// In templates, render the hidden field:
//
//	{{ .CSRFField }}   // from p.TemplateField(r)
//
// For SPAs, expose a small endpoint that returns the current token:
//
//	r.Get("/csrf-token", p.TokenHandler().ServeHTTP)
package csrf
