package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMethodClassifierDefaults(t *testing.T) {
	c := MethodClassifier()
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if c.IsWrite(httptest.NewRequest(m, "/", nil)) {
			t.Fatalf("%s should be read-only", m)
		}
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, "PROPFIND"} {
		if !c.IsWrite(httptest.NewRequest(m, "/", nil)) {
			t.Fatalf("%s should be a write", m)
		}
	}
}

func TestExemptPathsExactMatch(t *testing.T) {
	c := ExemptPaths(MethodClassifier(), "/login")
	if c.IsWrite(httptest.NewRequest(http.MethodPost, "/login", nil)) {
		t.Fatalf("/login should be exempt")
	}
	if !c.IsWrite(httptest.NewRequest(http.MethodPost, "/login/extra", nil)) {
		t.Fatalf("only the exact path should be exempt")
	}
}

func TestCookieIdentity(t *testing.T) {
	r := CookieIdentity("session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := r.ResolveIdentity(req); !id.Empty() {
		t.Fatalf("expected anonymous without cookie, got %v", id)
	}

	req.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	id := r.ResolveIdentity(req)
	if len(id) != 1 || id[0] != "abc" {
		t.Fatalf("unexpected identity %v", id)
	}
}

func TestHeaderIdentity(t *testing.T) {
	r := HeaderIdentity("X-User", "X-Tenant")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User", "u1")
	if id := r.ResolveIdentity(req); !id.Empty() {
		t.Fatalf("expected anonymous with a missing header, got %v", id)
	}

	req.Header.Set("X-Tenant", "t1")
	id := r.ResolveIdentity(req)
	if len(id) != 2 || id[0] != "u1" || id[1] != "t1" {
		t.Fatalf("unexpected identity %v", id)
	}
}

func TestIdentityEmpty(t *testing.T) {
	if !Identity(nil).Empty() || !(Identity{}).Empty() || !(Identity{"", ""}).Empty() {
		t.Fatalf("nil, zero-length and blank identities are empty")
	}
	if (Identity{"", "x"}).Empty() {
		t.Fatalf("identity with a value is not empty")
	}
}
