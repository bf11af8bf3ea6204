package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/transport/kafka"
)

// resources holds the connections released on shutdown. Any of them may be nil.
type resources struct {
	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *kafka.Producer
}

type resourcesIn struct {
	dig.In

	Pool     *pgxpool.Pool   `optional:"true"`
	Redis    *redis.Client   `optional:"true"`
	Producer *kafka.Producer `optional:"true"`
}

func newResources(in resourcesIn) *resources {
	return &resources{pool: in.Pool, redis: in.Redis, producer: in.Producer}
}

func (r *resources) Close(logger logx.Logger) {
	if r == nil {
		return
	}
	if err := r.producer.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			logger.Error("redis close error", logx.Err(err))
		}
	}
	if r.pool != nil {
		r.pool.Close()
	}
}
