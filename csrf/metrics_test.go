package csrf

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCountOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p := newTestProtector(t, Config{Metrics: m})
	h := p.Protect(&okHandler{})

	// one GET, one accepted POST, two rejected POSTs
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), postForm("csrf", strconv.FormatInt(math.MaxInt64, 10)+":"+maxIntSignature))
	h.ServeHTTP(httptest.NewRecorder(), postForm("csrf", "0:"+zeroSignature))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	if got := testutil.ToFloat64(m.issued); got != 2 {
		t.Fatalf("issued: got %v want 2", got)
	}
	if got := testutil.ToFloat64(m.verifications.WithLabelValues("accepted")); got != 1 {
		t.Fatalf("accepted: got %v want 1", got)
	}
	if got := testutil.ToFloat64(m.verifications.WithLabelValues("rejected")); got != 2 {
		t.Fatalf("rejected: got %v want 2", got)
	}
	if got := testutil.ToFloat64(m.rejections.WithLabelValues("expired")); got != 1 {
		t.Fatalf("expired: got %v want 1", got)
	}
	if got := testutil.ToFloat64(m.rejections.WithLabelValues("missing")); got != 1 {
		t.Fatalf("missing: got %v want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.observeIssued()
	m.observeVerification(nil)
	m.observeVerification(ErrExpired)
}

func TestReasonLabels(t *testing.T) {
	cases := map[error]string{
		nil:                  "ok",
		ErrMissingToken:      "missing",
		ErrMalformedToken:    "malformed",
		ErrSignatureMismatch: "signature",
		ErrExpired:           "expired",
		ErrInvalidIdentity:   "identity",
		ErrNoIdentity:        "anonymous",
		ErrEmptySecret:       "unknown",
	}
	for err, want := range cases {
		if got := reason(err); got != want {
			t.Fatalf("reason(%v): got %q want %q", err, got, want)
		}
	}
}
