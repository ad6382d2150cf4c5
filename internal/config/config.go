package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CLINIC_DB_HOST.
const EnvPrefix = "CLINIC"

type Config struct {
	Server    ServerConfig    `mapstructure:"server" envconfig:"SERVER"`
	Database  DatabaseConfig  `mapstructure:"database" envconfig:"DB"`
	Redis     RedisConfig     `mapstructure:"redis" envconfig:"REDIS"`
	JWT       JWTConfig       `mapstructure:"jwt" envconfig:"JWT"`
	Slots     SlotsConfig     `mapstructure:"slots" envconfig:"SLOTS"`
	Cache     CacheConfig     `mapstructure:"cache" envconfig:"CACHE"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" envconfig:"RATE_LIMIT"`
	CORS      CORSConfig      `mapstructure:"cors" envconfig:"CORS"`
	Log       LogConfig       `mapstructure:"log" envconfig:"LOG"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host" envconfig:"HOST"`
	Port            int           `mapstructure:"port" envconfig:"PORT"`
	User            string        `mapstructure:"user" envconfig:"USER"`
	Password        string        `mapstructure:"password" envconfig:"PASSWORD"`
	Name            string        `mapstructure:"name" envconfig:"NAME"`
	SSLMode         string        `mapstructure:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	URL          string        `mapstructure:"url" envconfig:"URL"`
	MaxRetries   int           `mapstructure:"max_retries" envconfig:"MAX_RETRIES"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" envconfig:"RETRY_BACKOFF"`
	PoolSize     int           `mapstructure:"pool_size" envconfig:"POOL_SIZE"`
	MinIdleConns int           `mapstructure:"min_idle_conns" envconfig:"MIN_IDLE_CONNS"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret" envconfig:"SECRET"`
	Issuer string `mapstructure:"issuer" envconfig:"ISSUER"`
}

type SlotsConfig struct {
	// DefaultDurationMin sizes slots when a service has no duration of its own.
	DefaultDurationMin int `mapstructure:"default_duration_min" envconfig:"DEFAULT_DURATION_MIN"`
	// Timezone decides what "today" and "now" mean for same-day filtering.
	Timezone string `mapstructure:"timezone" envconfig:"TIMEZONE"`
	// MaxAdvanceDays bounds how far ahead slots are offered.
	MaxAdvanceDays int `mapstructure:"max_advance_days" envconfig:"MAX_ADVANCE_DAYS"`
	// MaxRangeDays bounds the affected-appointments scan.
	MaxRangeDays int `mapstructure:"max_range_days" envconfig:"MAX_RANGE_DAYS"`
}

type CacheConfig struct {
	ScheduleTTL     time.Duration `mapstructure:"schedule_ttl" envconfig:"SCHEDULE_TTL"`
	ServiceTTL      time.Duration `mapstructure:"service_ttl" envconfig:"SERVICE_TTL"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" envconfig:"CLEANUP_INTERVAL"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" envconfig:"ENABLED"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"BURST"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LEVEL"`
	Pretty bool   `mapstructure:"pretty" envconfig:"PRETTY"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.request_timeout", "5s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "mis")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", "100ms")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("jwt.issuer", "mis")

	v.SetDefault("slots.default_duration_min", 30)
	v.SetDefault("slots.timezone", "Local")
	v.SetDefault("slots.max_advance_days", 90)
	v.SetDefault("slots.max_range_days", 366)

	v.SetDefault("cache.schedule_ttl", "5m")
	v.SetDefault("cache.service_ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "30m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 50)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yml from the usual locations (or the explicit path,
// when given), applies defaults and then CLINIC_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Slots.DefaultDurationMin <= 0 {
		return fmt.Errorf("slots.default_duration_min must be positive")
	}
	if c.Slots.MaxRangeDays <= 0 {
		return fmt.Errorf("slots.max_range_days must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured slot time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Slots.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid slots.timezone %q: %w", c.Slots.Timezone, err)
	}
	return loc, nil
}
