package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch_db",
}

var defaultRedis = Redis{
	Prefix: "dispatch",
}

// MaxGeocodeAttempts caps GEOCODE_MAX_ATTEMPTS.
const MaxGeocodeAttempts = 10

// Paris and suburbs; hashed addresses land inside this box.
var defaultGeo = Geo{
	MinLat:      48.75,
	MaxLat:      48.95,
	MinLng:      2.20,
	MaxLng:      2.50,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultKafka = Kafka{
	GroupID:       "service-dispatch",
	CommandsTopic: "dispatch.commands",
	EventsTopic:   "dispatch.order-events",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       5,
	Burst:      10,
	WriteCost:  2,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultLog = Log{
	Format: "slog",
	Level:  "info",
}

var defaultPprof = PprofConfig{
	Addr: "127.0.0.1:6060",
}

var defaultDispatch = Dispatch{
	OperationTimeout: 3 * time.Second,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default Redis settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultGeo returns the default geocoding settings.
func DefaultGeo() Geo {
	return defaultGeo
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultLog returns the default logging settings.
func DefaultLog() Log {
	return defaultLog
}

// DefaultDispatch returns the default engine settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultPprof returns the default debug listener settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}
