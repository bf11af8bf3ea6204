package app

import (
	"context"
	"time"

	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/audit"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
	"service-dispatch/internal/transport/kafka"
)

type eventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		provideEventProducer,
		newAuditEmitter,
		func(runner dispatchtx.Runner, emitter *audit.Emitter, m *metrics.Dispatch, timeout operationTimeout, logger logx.Logger) *dispatch.Service {
			return dispatch.NewService(runner, emitter, m, time.Duration(timeout), logger)
		},
		func(runner dispatchtx.Runner, timeout operationTimeout, logger logx.Logger) *dispatch.Selector {
			return dispatch.NewSelector(runner, time.Duration(timeout), logger)
		},
		func(store dispatchStore, resolver *geo.Resolver, timeout operationTimeout) *orders.QueryService {
			return orders.NewQueryService(store, resolver, time.Duration(timeout))
		},
		func(
			runner dispatchtx.Runner,
			resolver *geo.Resolver,
			selector *dispatch.Selector,
			svc *dispatch.Service,
			timeout operationTimeout,
			logger logx.Logger,
		) *orders.Reorderer {
			return orders.NewReorderer(runner, resolver, selector, svc, time.Duration(timeout), logger)
		},
		func(svc *dispatch.Service, reorderer *orders.Reorderer, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(svc, reorderer, logger)
		},
		newResources,
	)
}

// provideEventProducer returns nil when Kafka is not configured.
func provideEventProducer(cfg *config.Config, logger logx.Logger) (*kafka.Producer, error) {
	return kafka.NewProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
}

func newAuditEmitter(store dispatchStore, producer *kafka.Producer, m *metrics.Dispatch, logger logx.Logger) *audit.Emitter {
	var pub eventPublisher
	if producer != nil {
		pub = producer
	}
	return audit.NewEmitter(store, pub, m.AuditFailures, logger)
}
