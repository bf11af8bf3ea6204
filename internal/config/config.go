package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores service settings.
type Config struct {
	Port      int
	Storage   string
	DB        DB
	Redis     Redis
	Geo       Geo
	Kafka     Kafka
	RateLimit RateLimit
	Log       Log
	Dispatch  Dispatch
	Pprof     PprofConfig
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a libpq-style connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores geocode cache settings. An empty Addr disables Redis.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Geo stores geocoding settings.
type Geo struct {
	GoogleAPIKey string
	MinLat       float64
	MaxLat       float64
	MinLng       float64
	MaxLng       float64
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
}

// Kafka stores broker settings. Empty brokers disable Kafka.
type Kafka struct {
	Brokers       []string
	GroupID       string
	CommandsTopic string
	EventsTopic   string
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	WriteCost  float64 // tokens charged per mutating request; reads cost one
	TTL        time.Duration
	MaxBuckets int
}

// Log stores logging settings.
type Log struct {
	Format string // slog | zap
	Level  string
	File   string
}

// PprofConfig stores the debug listener settings. Non-loopback callers need basic auth.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Dispatch stores engine settings.
type Dispatch struct {
	OperationTimeout time.Duration
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := defaults()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: memory or postgres")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:      DefaultPort(),
		Storage:   StoragePostgres,
		DB:        DefaultDB(),
		Redis:     DefaultRedis(),
		Geo:       DefaultGeo(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
		Log:       DefaultLog(),
		Dispatch:  DefaultDispatch(),
		Pprof:     DefaultPprof(),
	}
}

func applyEnv(cfg *Config) error {
	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return err
	}
	cfg.Storage = envString("STORAGE", cfg.Storage)

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}

	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.Prefix = envString("REDIS_PREFIX", cfg.Redis.Prefix)
	if cfg.Redis.DB, err = envInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return err
	}

	cfg.Geo.GoogleAPIKey = envString("GOOGLE_MAPS_API_KEY", cfg.Geo.GoogleAPIKey)
	if cfg.Geo.MaxAttempts, err = envInt("GEOCODE_MAX_ATTEMPTS", cfg.Geo.MaxAttempts); err != nil {
		return err
	}
	if cfg.Geo.BaseDelay, err = envDuration("GEOCODE_BASE_DELAY", cfg.Geo.BaseDelay); err != nil {
		return err
	}
	if cfg.Geo.MaxDelay, err = envDuration("GEOCODE_MAX_DELAY", cfg.Geo.MaxDelay); err != nil {
		return err
	}

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.CommandsTopic = envString("KAFKA_COMMANDS_TOPIC", cfg.Kafka.CommandsTopic)
	cfg.Kafka.EventsTopic = envString("KAFKA_EVENTS_TOPIC", cfg.Kafka.EventsTopic)

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RATE")); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RATE %q: %w", v, err)
		}
		cfg.RateLimit.Rate = rate
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WRITE_COST")); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_WRITE_COST %q: %w", v, err)
		}
		cfg.RateLimit.WriteCost = cost
	}

	cfg.Log.Format = envString("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = envString("LOG_FILE", cfg.Log.File)

	if cfg.Dispatch.OperationTimeout, err = envDuration("DISPATCH_OPERATION_TIMEOUT", cfg.Dispatch.OperationTimeout); err != nil {
		return err
	}

	if cfg.Pprof.Enabled, err = envBool("PPROF_ENABLED", cfg.Pprof.Enabled); err != nil {
		return err
	}
	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)
	return nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("invalid storage: %q", c.Storage)
	}
	switch c.Log.Format {
	case "slog", "zap":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Addr) == "" {
		return errors.New("pprof enabled without address")
	}
	if c.Geo.MaxAttempts < 1 || c.Geo.MaxAttempts > MaxGeocodeAttempts {
		return fmt.Errorf("invalid geocode max attempts: %d (1..%d)", c.Geo.MaxAttempts, MaxGeocodeAttempts)
	}
	if c.Geo.MinLat >= c.Geo.MaxLat || c.Geo.MinLng >= c.Geo.MaxLng {
		return errors.New("invalid geocode bounding box")
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
