package csrf

import (
	"net/http"
	"strings"
)

// Identity is the ordered set of values a token is bound to, e.g. a user id
// and a session id. It is recomputed from every request and never stored.
type Identity []string

// Empty reports whether the identity carries no usable component.
func (id Identity) Empty() bool {
	for _, part := range id {
		if part != "" {
			return false
		}
	}
	return true
}

// IdentityResolver derives the caller's identity from a request. It must be
// deterministic for a given principal. An empty result means anonymous.
type IdentityResolver interface {
	ResolveIdentity(r *http.Request) Identity
}

// IdentityFunc adapts a plain function to IdentityResolver.
type IdentityFunc func(r *http.Request) Identity

func (f IdentityFunc) ResolveIdentity(r *http.Request) Identity { return f(r) }

// CookieIdentity resolves the identity from the value of the named cookie,
// typically a session id.
func CookieIdentity(name string) IdentityResolver {
	return IdentityFunc(func(r *http.Request) Identity {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return nil
		}
		return Identity{c.Value}
	})
}

// HeaderIdentity resolves a composite identity from the given headers, in
// order. Any missing header makes the caller anonymous.
func HeaderIdentity(names ...string) IdentityResolver {
	return IdentityFunc(func(r *http.Request) Identity {
		id := make(Identity, 0, len(names))
		for _, n := range names {
			v := r.Header.Get(n)
			if v == "" {
				return nil
			}
			id = append(id, v)
		}
		return id
	})
}

// WriteClassifier decides whether a request mutates state and so must
// present a valid token.
type WriteClassifier interface {
	IsWrite(r *http.Request) bool
}

// ClassifierFunc adapts a plain function to WriteClassifier.
type ClassifierFunc func(r *http.Request) bool

func (f ClassifierFunc) IsWrite(r *http.Request) bool { return f(r) }

// DefaultReadOnlyMethods never require a token.
var DefaultReadOnlyMethods = []string{http.MethodHead, http.MethodGet, http.MethodOptions}

// MethodClassifier treats every method outside readOnly as a write.
// With no arguments DefaultReadOnlyMethods is used.
func MethodClassifier(readOnly ...string) WriteClassifier {
	if len(readOnly) == 0 {
		readOnly = DefaultReadOnlyMethods
	}
	safe := make(map[string]bool, len(readOnly))
	for _, m := range readOnly {
		safe[strings.ToUpper(m)] = true
	}
	return ClassifierFunc(func(r *http.Request) bool {
		return !safe[r.Method]
	})
}

// ExemptPaths wraps base so that requests to the exact given URL paths are
// never verified. Use it for endpoints that legitimately arrive without a
// prior token, such as a login form submission.
func ExemptPaths(base WriteClassifier, paths ...string) WriteClassifier {
	exempt := make(map[string]bool, len(paths))
	for _, p := range paths {
		exempt[p] = true
	}
	return ClassifierFunc(func(r *http.Request) bool {
		if exempt[r.URL.Path] {
			return false
		}
		return base.IsWrite(r)
	})
}
