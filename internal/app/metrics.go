package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GeocodeRetriesTotal    prometheus.Counter `name:"geocode_retries_total"`
	Dispatch               *metrics.Dispatch
}

// provideMetrics registers collectors on the default registerer, reusing ones that already exist.
func provideMetrics() (metricsOut, error) {
	reg := prometheus.DefaultRegisterer
	var (
		out metricsOut
		err error
	)

	if out.RateLimitExceededTotal, err = registerCollector(reg, metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total"); err != nil {
		return metricsOut{}, err
	}
	if out.GeocodeRetriesTotal, err = registerCollector(reg, metrics.NewGeocodeRetriesTotal(), "geocode_retries_total"); err != nil {
		return metricsOut{}, err
	}

	d := metrics.NewDispatch()
	if d.Operations, err = registerCollector(reg, d.Operations, "dispatch_operations_total"); err != nil {
		return metricsOut{}, err
	}
	if d.Rejections, err = registerCollector(reg, d.Rejections, "dispatch_eligibility_rejections_total"); err != nil {
		return metricsOut{}, err
	}
	if d.GeocodeLookups, err = registerCollector(reg, d.GeocodeLookups, "geocode_cache_lookups_total"); err != nil {
		return metricsOut{}, err
	}
	if d.AuditFailures, err = registerCollector(reg, d.AuditFailures, "dispatch_audit_failures_total"); err != nil {
		return metricsOut{}, err
	}
	if d.OperationDurations, err = registerCollector(reg, d.OperationDurations, "dispatch_operation_duration_seconds"); err != nil {
		return metricsOut{}, err
	}
	out.Dispatch = d
	return out, nil
}

func registerCollector[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("register %s: %w", name, err)
}
