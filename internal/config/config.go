package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/delivery"
)

// Config holds the main configuration for the application.
type Config struct {
	Server      Server          `mapstructure:"server"`
	Database    Database        `mapstructure:"database"`
	Redis       Redis           `mapstructure:"redis"`
	Email       Email           `mapstructure:"email"`
	Telegram    Telegram        `mapstructure:"telegram"`
	Push        Push            `mapstructure:"push"`
	Retry       retry.Strategy  `mapstructure:"retry"`    // store/cache operation retries
	Delivery    delivery.Policy `mapstructure:"delivery"` // notification retry budget
	Idempotency Idempotency     `mapstructure:"idempotency"`
	Scheduler   Scheduler       `mapstructure:"scheduler"`
	SLO         SLO             `mapstructure:"slo"`
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Database holds database master and slave configuration.
type Database struct {
	Master DatabaseNode   `mapstructure:"master"`
	Slaves []DatabaseNode `mapstructure:"slaves"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DatabaseNode holds connection parameters for a single database node.
type DatabaseNode struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	User    string `mapstructure:"user"`
	Pass    string `mapstructure:"pass"`
	Name    string `mapstructure:"name"`
	SSLMode string `mapstructure:"ssl_mode"`
}

// Redis holds Redis connection parameters for the status cache.
type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// Email holds SMTP configuration for the email channel.
type Email struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Telegram holds configuration for the telegram channel.
type Telegram struct {
	Token string `mapstructure:"token"`
}

// Push holds configuration for the webhook push channel.
type Push struct {
	AuthToken string `mapstructure:"auth_token"` // bearer token sent with every push, optional
}

// Idempotency bounds how long creation keys stay on record.
type Idempotency struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Scheduler holds watch-loop tuning.
type Scheduler struct {
	Workers int `mapstructure:"workers"` // number of concurrent firing workers
}

// SLO holds the operational targets exposed through metrics.
type SLO struct {
	FireLagTarget   time.Duration `mapstructure:"fire_lag_target"`   // p95 fire-lag budget
	DeliveryMinRate float64       `mapstructure:"delivery_min_rate"` // success/total threshold
}

// DSN returns the PostgreSQL DSN string for connecting to this database node.
func (n DatabaseNode) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		n.User, n.Pass, n.Host, n.Port, n.Name, n.SSLMode,
	)
}

// mustBindEnv binds critical environment variables to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"database.master.host": "DB_HOST",
		"database.master.port": "DB_PORT",
		"database.master.user": "DB_USER",
		"database.master.pass": "DB_PASSWORD",
		"database.master.name": "DB_NAME",

		"redis.address":  "REDIS_ADDRESS",
		"redis.password": "REDIS_PASSWORD",
		"redis.database": "REDIS_DATABASE",

		"email.smtp_host": "SMTP_HOST",
		"email.smtp_port": "SMTP_PORT",
		"email.username":  "SMTP_USER",
		"email.password":  "SMTP_PASS",
		"email.from":      "SMTP_FROM",

		"telegram.token":  "TELEGRAM_TOKEN",
		"push.auth_token": "PUSH_AUTH_TOKEN",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// Must loads and validates the configuration from file and environment variables.
//
// It panics if configuration cannot be read or unmarshalled.
func Must() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
