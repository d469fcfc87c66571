package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Push      PushConfig
	Auth      AuthConfig
	PubSub    PubSubConfig
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SchedulerConfig struct {
	// TimezoneOffset is the fixed UTC offset reminder times are
	// interpreted in, formatted as ±HH:MM.
	TimezoneOffset string
	// MatchWindow widens due-matching to the last MatchWindow+1 minutes;
	// 0 keeps exact-minute matching.
	MatchWindow int
	Workers     int
	PushTimeout time.Duration
	// CronSecret authorizes the external trigger endpoint. The endpoint
	// rejects everything while it is unset.
	CronSecret string
	// EnableInternalCron runs the in-process every-minute trigger instead
	// of relying on an external cron service.
	EnableInternalCron bool
}

type PushConfig struct {
	// FirebaseServiceAccount holds the service account credentials JSON.
	// Empty leaves push delivery unconfigured: task CRUD still works and
	// the scheduler endpoint reports the missing setup.
	FirebaseServiceAccount string
}

type AuthConfig struct {
	JWTSecret string
}

type PubSubConfig struct {
	// NATSURL enables run-completed event publishing when set.
	NATSURL string
}

func Load() (*Config, error) {
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN environment variable is required")
	}

	matchWindow, err := strconv.Atoi(getEnv("SCHEDULER_MATCH_WINDOW", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_MATCH_WINDOW: %w", err)
	}

	if matchWindow < 0 {
		return nil, fmt.Errorf("SCHEDULER_MATCH_WINDOW must not be negative")
	}

	workers, err := strconv.Atoi(getEnv("SCHEDULER_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_WORKERS: %w", err)
	}

	pushTimeout, err := time.ParseDuration(getEnv("PUSH_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUSH_TIMEOUT: %w", err)
	}

	enableInternalCron, err := strconv.ParseBool(getEnv("ENABLE_INTERNAL_CRON", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENABLE_INTERNAL_CRON: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			DSN:             dsn,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Scheduler: SchedulerConfig{
			TimezoneOffset:     getEnv("SCHEDULER_TIMEZONE_OFFSET", "+05:30"),
			MatchWindow:        matchWindow,
			Workers:            workers,
			PushTimeout:        pushTimeout,
			CronSecret:         os.Getenv("CRON_SECRET"),
			EnableInternalCron: enableInternalCron,
		},
		Push: PushConfig{
			FirebaseServiceAccount: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		},
		Auth: AuthConfig{
			JWTSecret: jwtSecret,
		},
		PubSub: PubSubConfig{
			NATSURL: os.Getenv("NATS_URL"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
