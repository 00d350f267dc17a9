package csrf

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors updated by a Protector.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	issued        prometheus.Counter
	verifications *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

// NewMetrics creates the CSRF collectors and registers them with reg.
// It panics if they are already registered, like MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csrf",
			Name:      "tokens_issued_total",
			Help:      "Signed CSRF tokens issued for outgoing responses",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "csrf",
			Name:      "verifications_total",
			Help:      "CSRF verifications on write requests by result",
		}, []string{"result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "csrf",
			Name:      "rejections_total",
			Help:      "Rejected CSRF verifications by internal reason",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.issued, m.verifications, m.rejections)
	return m
}

func (m *Metrics) observeIssued() {
	if m == nil {
		return
	}
	m.issued.Inc()
}

func (m *Metrics) observeVerification(err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.verifications.WithLabelValues("accepted").Inc()
		return
	}
	m.verifications.WithLabelValues("rejected").Inc()
	m.rejections.WithLabelValues(reason(err)).Inc()
}
