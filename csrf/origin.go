package csrf

import (
	"net/http"
	"net/url"
	"strings"
)

// checkOrigin checks whether a write request is same-site according to the
// allowed host. When allowed is empty, it falls back to r.Host. It prefers the
// Origin header and falls back to Referer; a request with neither fails.
//
// Params:
//   - r: the incoming request containing Origin/Referer headers.
//   - allowed: the allowed host (domain[:port]); if empty, r.Host is used.
//
// Returns:
// - nil when origin/referer is acceptable; otherwise ErrBadOrigin.
func checkOrigin(r *http.Request, allowed string) error {
	host := allowed
	if host == "" {
		host = r.Host
	}

	if origin := r.Header.Get("Origin"); origin != "" {
		if !sameHost(origin, host) {
			return ErrBadOrigin
		}
		return nil
	}
	if ref := r.Header.Get("Referer"); ref != "" && sameHost(ref, host) {
		return nil
	}
	return ErrBadOrigin
}

// sameHost compares only the host (may include port) of originOrRef.
func sameHost(originOrRef, allowedHost string) bool {
	u, err := url.Parse(originOrRef)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, allowedHost)
}
