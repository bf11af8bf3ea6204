package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/orders"
	"service-dispatch/internal/transport/kafka"
)

type commandHandler interface {
	Handle(ctx context.Context, cmd orders.Command) error
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.CommandsTopic, makeCommandHandler(p))
		},
	)
}

// makeCommandHandler marks conflicts as permanent: redelivery would hit the same state again.
func makeCommandHandler(h commandHandler) kafka.HandleFunc {
	return func(ctx context.Context, cmd orders.Command) error {
		err := h.Handle(ctx, cmd)
		if errors.Is(err, apperr.ErrConflict) {
			return kafka.Permanent(err)
		}
		return err
	}
}
