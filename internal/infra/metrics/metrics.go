package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the counters the service exports on /metrics.
type Metrics struct {
	AuthEvents *prometheus.CounterVec
	MailJobs   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account",
			Name:      "auth_events_total",
			Help:      "Session operations by outcome.",
		}, []string{"op", "result"}),
		MailJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account",
			Name:      "mail_jobs_total",
			Help:      "Mail jobs by kind and outcome.",
		}, []string{"kind", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.AuthEvents, m.MailJobs)
	}
	return m
}

// Auth records one session operation outcome.
func (m *Metrics) Auth(op string, err error) {
	if m == nil {
		return
	}
	m.AuthEvents.WithLabelValues(op, result(err)).Inc()
}

// Mail records one processed mail job.
func (m *Metrics) Mail(kind string, err error) {
	if m == nil {
		return
	}
	m.MailJobs.WithLabelValues(kind, result(err)).Inc()
}

// RegisterQueueDepth exports the length reported by depth as a gauge sampled
// on every scrape. A failed read is exported as -1.
func RegisterQueueDepth(reg prometheus.Registerer, queue string, depth func() (int64, error)) prometheus.GaugeFunc {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "account",
		Name:        "mail_queue_depth",
		Help:        "Jobs waiting in the mail queue.",
		ConstLabels: prometheus.Labels{"queue": queue},
	}, func() float64 {
		n, err := depth()
		if err != nil {
			return -1
		}
		return float64(n)
	})
	if reg != nil {
		reg.MustRegister(g)
	}
	return g
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
