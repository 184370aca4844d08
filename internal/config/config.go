package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения: BOOKINGFLOW_SERVER_HTTP_PORT, BOOKINGFLOW_DATABASE_DB_NAME и т.д.
// Имена без префикса не читаются.
const EnvPrefix = "BOOKINGFLOW"

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server" split_words:"true"`
	Logs         LogsConfig         `toml:"logs" split_words:"true"`
	Metrics      MetricsConfig      `toml:"metrics" split_words:"true"`
	Platform     ServiceConfig      `toml:"platform" split_words:"true"`
	Geocoding    GeocodingConfig    `toml:"geocoding" split_words:"true"`
	IdentityGate IdentityGateConfig `toml:"identity_gate" split_words:"true"`
	Flow         FlowConfig         `toml:"flow" split_words:"true"`
	Continuation ContinuationConfig `toml:"continuation" split_words:"true"`
	Database     DatabaseConfig     `toml:"database" split_words:"true"`
	Redis        RedisConfig        `toml:"redis" split_words:"true"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// LogsConfig настройки логгера. Пустой File = stdout.
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// ServiceConfig адрес внешнего сервиса. Timeout в секундах.
type ServiceConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

// GeocodingConfig геокодинг адреса выезда на дом
type GeocodingConfig struct {
	Enabled bool   `toml:"enabled" split_words:"true"`
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

// IdentityGateConfig внешний сервис проверки личности
type IdentityGateConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`

	// PublicBaseURL внешний адрес этого сервиса для callback и continuation ссылок
	PublicBaseURL string `toml:"public_base_url" split_words:"true"`

	// CallbackSecret общий секрет в заголовке X-Gate-Secret; пустой отключает проверку
	CallbackSecret string `toml:"callback_secret" split_words:"true"`
}

// FlowConfig настройки сессий записи. TTL в секундах.
type FlowConfig struct {
	SessionTTL         int     `toml:"session_ttl" split_words:"true"`
	CatalogTTL         int     `toml:"catalog_ttl" split_words:"true"`
	NextAvailableDays  int     `toml:"next_available_days" split_words:"true"`
	ScanRatePerSecond  float64 `toml:"scan_rate_per_second" split_words:"true"`
	ScanBurst          int     `toml:"scan_burst" split_words:"true"`
	DefaultCountryCode string  `toml:"default_country_code" split_words:"true"`
}

// ContinuationConfig хранилище данных, переживающих redirect identity gate.
// Backend postgres или redis; TTL и PurgeInterval в секундах, очистка только для postgres.
type ContinuationConfig struct {
	Backend       string `toml:"backend" split_words:"true"`
	TTL           int    `toml:"ttl" split_words:"true"`
	KeyPrefix     string `toml:"key_prefix" split_words:"true"`
	PurgeInterval int    `toml:"purge_interval" split_words:"true"`
}

// DatabaseConfig подключение к postgres
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig подключение к redis
type RedisConfig struct {
	URL      string `toml:"url" split_words:"true"`
	PoolSize int    `toml:"pool_size" split_words:"true"`
}

// Load читает конфигурацию из toml файла и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 30)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "booking_flow"
	}

	setDefault(&c.Platform.Timeout, 5)
	setDefault(&c.Geocoding.Timeout, 3)
	setDefault(&c.IdentityGate.Timeout, 5)

	setDefault(&c.Flow.SessionTTL, 1800)
	setDefault(&c.Flow.CatalogTTL, 300)
	setDefault(&c.Flow.NextAvailableDays, 14)
	setDefault(&c.Flow.ScanBurst, 1)
	if c.Flow.ScanRatePerSecond <= 0 {
		c.Flow.ScanRatePerSecond = 5
	}

	if c.Continuation.Backend == "" {
		c.Continuation.Backend = BackendPostgres
	}
	setDefault(&c.Continuation.TTL, 1800)
	setDefault(&c.Continuation.PurgeInterval, 300)
	if c.Continuation.KeyPrefix == "" {
		c.Continuation.KeyPrefix = "bookingflow"
	}

	setDefault(&c.Database.Port, 5432)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	setDefault(&c.Database.MaxOpenConns, 10)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Redis.PoolSize, 10)
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Platform.URL == "" {
		return fmt.Errorf("%w: platform.url is required", ErrInvalidConfig)
	}
	if c.Geocoding.Enabled && c.Geocoding.URL == "" {
		return fmt.Errorf("%w: geocoding.url is required when geocoding is enabled", ErrInvalidConfig)
	}
	if c.IdentityGate.URL == "" || c.IdentityGate.PublicBaseURL == "" {
		return fmt.Errorf("%w: identity_gate.url and identity_gate.public_base_url are required", ErrInvalidConfig)
	}

	switch c.Continuation.Backend {
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres continuations", ErrInvalidConfig)
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: redis.url is required for redis continuations", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: continuation.backend=%q", ErrInvalidConfig, c.Continuation.Backend)
	}
	return nil
}

// Seconds переводит значение конфигурации в секундах в time.Duration
func Seconds(v int) time.Duration {
	return time.Duration(v) * time.Second
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
