package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// Metrics groups the counters the services report to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	latencyMS *prometheus.HistogramVec
	checkouts *prometheus.CounterVec
	webhooks  *prometheus.CounterVec
	emails    *prometheus.CounterVec
	gatherer  prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_webhooks_total",
			Help:      "Payment provider webhook deliveries by event type and outcome.",
		}, []string{"event", "outcome"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Transactional emails by template and outcome.",
		}, []string{"template", "outcome"}),
		gatherer: reg,
	}

	reg.MustRegister(m.requests, m.latencyMS, m.checkouts, m.webhooks, m.emails)
	return m
}

func (m *Metrics) CheckoutOutcome(kind, outcome string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) WebhookOutcome(event, outcome string) {
	if m == nil {
		return
	}
	m.webhooks.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) EmailOutcome(template, outcome string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(template, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests per mux route template so ids in the path do
// not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := StartTimer()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.latencyMS.WithLabelValues(route).Observe(float64(timer.Duration().Milliseconds()))
	})
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
