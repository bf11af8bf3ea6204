package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGeocodeRetriesTotal returns a counter of retry attempts performed against the geocoder.
func NewGeocodeRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocode_retries_total",
		Help: "Total number of retry attempts performed against the geocoding provider",
	})
}

// Dispatch groups the engine's collectors.
type Dispatch struct {
	Operations         *prometheus.CounterVec
	Rejections         *prometheus.CounterVec
	GeocodeLookups     *prometheus.CounterVec
	AuditFailures      prometheus.Counter
	OperationDurations *prometheus.HistogramVec
}

// NewDispatch creates unregistered dispatch collectors.
func NewDispatch() *Dispatch {
	return &Dispatch{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_operations_total",
			Help: "Dispatch operations by name and outcome",
		}, []string{"operation", "outcome"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_eligibility_rejections_total",
			Help: "Drivers rejected by the eligibility evaluator, by reason code",
		}, []string{"code"}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geocode_cache_lookups_total",
			Help: "Address to coordinates cache lookups by result",
		}, []string{"result"}),
		AuditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_audit_failures_total",
			Help: "Activity or notification writes that failed after a committed mutation",
		}),
		OperationDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_operation_duration_seconds",
			Help:    "Duration of dispatch operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Collectors returns every collector for registration.
func (d *Dispatch) Collectors() []prometheus.Collector {
	return []prometheus.Collector{d.Operations, d.Rejections, d.GeocodeLookups, d.AuditFailures, d.OperationDurations}
}

// Register registers every collector on reg.
func (d *Dispatch) Register(reg prometheus.Registerer) error {
	for _, c := range d.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// LabelCounter increments one label of a single-label CounterVec.
type LabelCounter struct {
	vec *prometheus.CounterVec
}

// NewLabelCounter wraps vec.
func NewLabelCounter(vec *prometheus.CounterVec) LabelCounter {
	return LabelCounter{vec: vec}
}

// Inc increments the series for label.
func (c LabelCounter) Inc(label string) {
	c.vec.WithLabelValues(label).Inc()
}

// ObserveOperation records the outcome and duration of a dispatch operation.
func (d *Dispatch) ObserveOperation(operation, outcome string, took time.Duration) {
	d.Operations.WithLabelValues(operation, outcome).Inc()
	d.OperationDurations.WithLabelValues(operation).Observe(took.Seconds())
}

// IncRejection counts one eligibility rejection.
func (d *Dispatch) IncRejection(code string) {
	d.Rejections.WithLabelValues(code).Inc()
}
