package metrics

import (
	"net/http"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "servicedesk"

// Prom records dispatch events in Prometheus metrics.
type Prom struct {
	created       prometheus.Counter
	notifications *prometheus.CounterVec
	rounds        *prometheus.CounterVec
	acceptance    prometheus.Histogram
	swept         prometheus.Counter
	push          *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewProm registers the dispatch collectors on reg. A nil reg means the
// default registry. Collectors already registered are reused.
func NewProm(reg *prometheus.Registry) (*Prom, error) {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	p := &Prom{gatherer: gatherer}
	var err error

	if p.created, err = register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emergencies_created_total",
		Help:      "Emergency requests accepted for dispatch",
	})); err != nil {
		return nil, err
	}
	if p.notifications, err = register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notifications issued (pending) and resolved, by state",
	}, []string{"state"})); err != nil {
		return nil, err
	}
	if p.rounds, err = register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_rounds_total",
		Help:      "Finder rounds by outcome",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if p.acceptance, err = register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "acceptance_latency_seconds",
		Help:      "Time between an offer being sent and its acceptance",
		Buckets:   []float64{1, 5, 10, 20, 30, 45, 60, 90},
	})); err != nil {
		return nil, err
	}
	if p.swept, err = register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_expired_total",
		Help:      "Notifications moved to timed_out by the sweeper",
	})); err != nil {
		return nil, err
	}
	if p.push, err = register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_total",
		Help:      "Push deliveries by kind and result",
	}, []string{"kind", "result"})); err != nil {
		return nil, err
	}

	return p, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (p *Prom) EmergencyCreated() { p.created.Inc() }

func (p *Prom) NotificationsIssued(n int) {
	p.notifications.WithLabelValues(string(domain.NotificationPending)).Add(float64(n))
}

func (p *Prom) NotificationResolved(state domain.NotificationState) {
	p.notifications.WithLabelValues(string(state)).Inc()
}

func (p *Prom) DispatchRound(outcome string) { p.rounds.WithLabelValues(outcome).Inc() }

func (p *Prom) Accepted(latency time.Duration) { p.acceptance.Observe(latency.Seconds()) }

func (p *Prom) SweepExpired(n int) { p.swept.Add(float64(n)) }

func (p *Prom) PushResult(kind domain.PushKind, ok bool) {
	result := "failed"
	if ok {
		result = "delivered"
	}
	p.push.WithLabelValues(string(kind), result).Inc()
}

// Handler serves the registry the collectors were registered on.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
