package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Events   EventsConfig   `mapstructure:"events" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects the persistence backend. URL is only needed for postgres.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL          string `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains bearer token settings. Mutating routes are only
// protected when Enabled is true.
type AuthConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required_if=Enabled true,omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// EventsConfig sizes the event bus.
type EventsConfig struct {
	AsyncWorkers   int `mapstructure:"async_workers" validate:"gt=0"`
	AsyncQueueSize int `mapstructure:"async_queue_size" validate:"gt=0"`
	JournalSize    int `mapstructure:"journal_size" validate:"gt=0"`
}

// RedisConfig enables the shared notification idempotency store when URL is set.
type RedisConfig struct {
	URL                   string `mapstructure:"url" validate:"omitempty,url"`
	IdempotencyTTLMinutes int    `mapstructure:"idempotency_ttl_minutes" validate:"gt=0"`
}

// KafkaConfig enables the event exporter when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}
