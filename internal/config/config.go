package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	PushTransportLog     = "log"
	PushTransportWebhook = "webhook"
	PushTransportMQTT    = "mqtt"
)

type Config struct {
	Env       string          `json:"env"`
	Http      HttpConfig      `json:"http"`
	Storage   StorageConfig   `json:"storage"`
	Postgres  PostgresConfig  `json:"postgres"`
	SQLite    SQLiteConfig    `json:"sqlite"`
	Redis     RedisConfig     `json:"redis"`
	Dispatch  DispatchConfig  `json:"dispatch"`
	Push      PushConfig      `json:"push"`
	MQTT      MQTTConfig      `json:"mqtt"`
	Metrics   MetricsConfig   `json:"metrics"`
	RateLimit RateLimitConfig `json:"rate_limit"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type SQLiteConfig struct {
	Path string `json:"path"`
}

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

// DispatchConfig carries the emergency dispatch constants.
type DispatchConfig struct {
	NotificationTimeout time.Duration `json:"notification_timeout"`
	InitialRadiusKM     float64       `json:"initial_radius_km"`
	RadiusStepKM        float64       `json:"radius_step_km"`
	MaxRadiusKM         float64       `json:"max_radius_km"`
	SweepInterval       time.Duration `json:"sweep_interval"`
	CandidateCacheTTL   time.Duration `json:"candidate_cache_ttl"`
	LockTTL             time.Duration `json:"lock_ttl"`
}

type PushConfig struct {
	Transport  string `json:"transport"`
	WebhookURL string `json:"webhook_url"`
	QueueKey   string `json:"queue_key"`
	Workers    int    `json:"workers"`
	Buffer     int    `json:"buffer"`
}

type MQTTConfig struct {
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         int    `json:"qos"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled"`
}

type RateLimitConfig struct {
	RPS   int `json:"rps"`
	Burst int `json:"burst"`
}

func Load() (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", DriverPostgres),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "servicedesk"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        int32(getEnvInt("POSTGRES_MIN_CONNS", 1)),
			MaxConnLifetime: getEnvDuration("POSTGRES_MAX_CONN_LIFETIME", time.Hour),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "./data/servicedesk.db"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Dispatch: DispatchConfig{
			NotificationTimeout: getEnvDuration("NOTIFICATION_TIMEOUT", 90*time.Second),
			InitialRadiusKM:     getEnvFloat("INITIAL_RADIUS_KM", 5.0),
			RadiusStepKM:        getEnvFloat("RADIUS_STEP_KM", 2.0),
			MaxRadiusKM:         getEnvFloat("MAX_RADIUS_KM", 50.0),
			SweepInterval:       getEnvDuration("SWEEP_INTERVAL", 30*time.Second),
			CandidateCacheTTL:   getEnvDuration("CANDIDATE_CACHE_TTL", 15*time.Second),
			LockTTL:             getEnvDuration("DISPATCH_LOCK_TTL", 10*time.Second),
		},
		Push: PushConfig{
			Transport:  getEnv("PUSH_TRANSPORT", PushTransportLog),
			WebhookURL: getEnv("PUSH_WEBHOOK_URL", ""),
			QueueKey:   getEnv("PUSH_QUEUE_KEY", "push:queue"),
			Workers:    getEnvInt("PUSH_WORKERS", 2),
			Buffer:     getEnvInt("PUSH_BUFFER", 256),
		},
		MQTT: MQTTConfig{
			Broker:      getEnv("MQTT_BROKER", ""),
			ClientID:    getEnv("MQTT_CLIENT_ID", "servicedesk"),
			Username:    getEnv("MQTT_USERNAME", ""),
			Password:    getEnv("MQTT_PASSWORD", ""),
			TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "servicedesk"),
			QoS:         getEnvInt("MQTT_QOS", 1),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvInt("RATE_LIMIT_RPS", 10),
			Burst: getEnvInt("RATE_LIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Bool("redis_enabled", cfg.Redis.Enabled),
		slog.String("push_transport", cfg.Push.Transport))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("SQLITE_PATH required")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	d := c.Dispatch
	if d.NotificationTimeout <= 0 || d.SweepInterval <= 0 {
		return errors.New("NOTIFICATION_TIMEOUT and SWEEP_INTERVAL must be positive")
	}
	if d.InitialRadiusKM <= 0 || d.RadiusStepKM <= 0 {
		return errors.New("INITIAL_RADIUS_KM and RADIUS_STEP_KM must be positive")
	}
	if d.MaxRadiusKM < d.InitialRadiusKM {
		return errors.New("MAX_RADIUS_KM must not be below INITIAL_RADIUS_KM")
	}

	switch c.Push.Transport {
	case PushTransportLog:
	case PushTransportWebhook:
		if c.Push.WebhookURL == "" {
			return errors.New("PUSH_WEBHOOK_URL required for webhook transport")
		}
	case PushTransportMQTT:
		if c.MQTT.Broker == "" {
			return errors.New("MQTT_BROKER required for mqtt transport")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			return errors.New("MQTT_QOS must be 0, 1 or 2")
		}
	default:
		return fmt.Errorf("unknown PUSH_TRANSPORT %q", c.Push.Transport)
	}
	if c.Push.Workers < 1 || c.Push.Buffer < 1 {
		return errors.New("PUSH_WORKERS and PUSH_BUFFER must be at least 1")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
