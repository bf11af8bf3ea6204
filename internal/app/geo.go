package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

const redisPingTimeout = 2 * time.Second

var newGoogleGeocoder = geo.NewGoogleGeocoder

type geoCacheOut struct {
	dig.Out

	Cache geo.Cache
	Redis *redis.Client
}

type geocoderIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"geocode_retries_total"`
}

func registerGeo(container *dig.Container) error {
	return provideAll(container,
		provideGeoCache,
		provideGeocoder,
		func(cache geo.Cache, geocoder geo.Geocoder, logger logx.Logger, m *metrics.Dispatch) *geo.Resolver {
			return geo.NewResolver(cache, geocoder, logger, metrics.NewLabelCounter(m.GeocodeLookups))
		},
	)
}

// provideGeoCache uses Redis when it is configured and reachable, otherwise a process-local cache.
func provideGeoCache(ctx context.Context, cfg *config.Config, logger logx.Logger) geoCacheOut {
	if cfg.Redis.Addr == "" {
		return geoCacheOut{Cache: geo.NewMemoryCache()}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory geocode cache",
			logx.String("addr", cfg.Redis.Addr),
			logx.Err(err),
		)
		_ = client.Close()
		return geoCacheOut{Cache: geo.NewMemoryCache()}
	}
	logger.Info("geocode cache on redis", logx.String("addr", cfg.Redis.Addr))
	return geoCacheOut{Cache: geo.NewRedisCache(client, cfg.Redis.Prefix), Redis: client}
}

// provideGeocoder uses the Google API when a key is configured, otherwise the address hash.
func provideGeocoder(in geocoderIn) (geo.Geocoder, error) {
	g := in.Config.Geo
	if g.GoogleAPIKey == "" {
		return geo.NewHashGeocoder(geo.BoundingBox{
			MinLat: g.MinLat, MaxLat: g.MaxLat,
			MinLng: g.MinLng, MaxLng: g.MaxLng,
		}), nil
	}
	google, err := newGoogleGeocoder(g.GoogleAPIKey, "")
	if err != nil {
		return nil, err
	}
	return geo.NewRetryingGeocoder(google, in.Logger, in.Retries, geo.RetryConfig{
		MaxAttempts: g.MaxAttempts,
		BaseDelay:   g.BaseDelay,
		MaxDelay:    g.MaxDelay,
	}), nil
}
