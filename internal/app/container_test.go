package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/repository/memory"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
	testlog "service-dispatch/internal/testutil"
	"service-dispatch/internal/transport/kafka"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Port:      8080,
		Storage:   config.StorageMemory,
		DB:        config.DefaultDB(),
		Redis:     config.DefaultRedis(),
		Geo:       config.DefaultGeo(),
		RateLimit: config.DefaultRateLimit(),
		Log:       config.Log{Format: "slog", Level: "error"},
		Dispatch:  config.DefaultDispatch(),
		Pprof:     config.DefaultPprof(),
	}
}

func builderFor(cfg *config.Config) *ContainerBuilder {
	return NewContainerBuilder().
		WithConfigLoader(func() (*config.Config, error) { return cfg, nil }).
		WithDBConnect(func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
			return nil, errors.New("db must not be used")
		})
}

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func TestBuild_MemoryStorage_ResolvesHTTPGraph(t *testing.T) {
	t.Parallel()

	c, err := builderFor(memoryConfig()).build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(in httpServersIn, store dispatchStore, res *resources) {
		require.Equal(t, ":8080", in.Main.Addr)
		require.Greater(t, in.Main.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, in.Main.WriteTimeout, time.Duration(0))
		require.Nil(t, in.Pprof)
		require.IsType(t, &memory.Store{}, store)
		require.Nil(t, res.pool)
		require.Nil(t, res.redis)
		require.Nil(t, res.producer)
	})
	require.NoError(t, err)
}

func TestBuild_MuxServesDispatchRoutes(t *testing.T) {
	t.Parallel()

	c, err := builderFor(memoryConfig()).build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(mux http.Handler) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		req := httptest.NewRequest(http.MethodPost, "/orders/O-404/assign", strings.NewReader(`{"driver_id":"D1"}`))
		req.Header.Set("X-Actor-ID", "admin-1")
		rr = httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
	require.NoError(t, err)
}

func TestBuild_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Pprof = config.PprofConfig{Enabled: true, Addr: "127.0.0.1:6060", User: "u", Pass: "p"}

	c, err := builderFor(cfg).build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func TestBuild_PostgresConnectError(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Storage = config.StoragePostgres

	var gotDSN string
	c, err := builderFor(cfg).
		WithDBConnect(func(_ context.Context, _ logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
			gotDSN = dsn
			require.Equal(t, 10, retries)
			require.Equal(t, time.Second, delay)
			return nil, errors.New("db failed")
		}).
		build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(dispatchStore) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db failed")
	require.Equal(t, cfg.DB.DSN(), gotDSN)
}

func TestBuild_ConfigError(t *testing.T) {
	t.Parallel()

	c, err := NewContainerBuilder().
		WithConfigLoader(func() (*config.Config, error) { return nil, errors.New("bad env") }).
		build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(*http.Server) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad env")
}

func TestBuildWorker_ResolvesServicesWithoutKafka(t *testing.T) {
	t.Parallel()

	c, err := builderFor(memoryConfig()).buildWorker(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(
		consumer *kafka.Consumer,
		p *orders.Processor,
		svc *dispatch.Service,
		resolver *geo.Resolver,
	) {
		require.Nil(t, consumer)
		require.NotNil(t, p)
		require.NotNil(t, svc)
		require.NotNil(t, resolver)
	})
	require.NoError(t, err)

	// the worker graph has no HTTP server
	err = c.Invoke(func(*http.Server) {})
	require.Error(t, err)
}

func TestContainerBuilder_MustBuild_DoesNotCallFatal(t *testing.T) {
	t.Parallel()

	c := builderFor(memoryConfig()).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		}).
		MustBuild(context.Background())
	require.NotNil(t, c)
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() operationTimeout { return operationTimeout(3 * time.Second) },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d operationTimeout) {
		require.NotNil(t, ctx)
		require.Equal(t, operationTimeout(3*time.Second), d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterCore_ProvidesDependencies(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()
	cfg := memoryConfig()
	cfg.Dispatch.OperationTimeout = 7 * time.Second

	err := registerCore(c, ctx, func() (*config.Config, error) { return cfg, nil })
	require.NoError(t, err)

	err = c.Invoke(func(gotCtx context.Context, logger logx.Logger, got *config.Config, timeout operationTimeout) {
		require.Equal(t, ctx, gotCtx)
		require.NotNil(t, logger)
		require.Same(t, cfg, got)
		require.Equal(t, operationTimeout(7*time.Second), timeout)
	})
	require.NoError(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	require.IsType(t, &logx.SlogAdapter{}, newLogger(cfg))

	cfg.Log.Format = "zap"
	require.IsType(t, &logx.ZapAdapter{}, newLogger(cfg))
}

func TestProvideGeoCache(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	out := provideGeoCache(context.Background(), cfg, logx.Nop())
	require.IsType(t, &geo.MemoryCache{}, out.Cache)
	require.Nil(t, out.Redis)

	rec := testlog.New()
	cfg.Redis.Addr = "127.0.0.1:1"
	out = provideGeoCache(context.Background(), cfg, rec.Logger())
	require.IsType(t, &geo.MemoryCache{}, out.Cache)
	require.Nil(t, out.Redis)
	require.True(t, hasMsg(rec.Entries(), "redis unavailable, using in-memory geocode cache"))
}

func TestProvideGeocoder(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	g, err := provideGeocoder(geocoderIn{Config: cfg, Logger: logx.Nop()})
	require.NoError(t, err)
	require.IsType(t, &geo.HashGeocoder{}, g)

	cfg.Geo.GoogleAPIKey = "AIza-test-key"
	g, err = provideGeocoder(geocoderIn{Config: cfg, Logger: logx.Nop()})
	require.NoError(t, err)
	require.IsType(t, &geo.RetryingGeocoder{}, g)
}

func TestBuild_RateLimitEnabled_RejectsWritesOverBudget(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.RateLimit = config.RateLimit{Enabled: true, Rate: 0.001, Burst: 3, WriteCost: 2, TTL: time.Minute}

	c, err := builderFor(cfg).build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(mux http.Handler) {
		send := func(method, target string) int {
			req := httptest.NewRequest(method, target, strings.NewReader(`{"note":"x"}`))
			req.Header.Set("X-Actor-ID", "ops-limited")
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			return rr.Code
		}

		require.Equal(t, http.StatusNotFound, send(http.MethodPost, "/orders/O1/cancel"))
		require.Equal(t, http.StatusOK, send(http.MethodGet, "/orders"))
		require.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/orders/O1/cancel"))
	})
	require.NoError(t, err)
}
