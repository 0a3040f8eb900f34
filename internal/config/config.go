package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort  string `envconfig:"APP_PORT" default:"8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MySQLHost string `envconfig:"MYSQL_HOST" default:"mysql"`
	MySQLPort string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB   string `envconfig:"MYSQL_DB" default:"igia"`
	MySQLUser string `envconfig:"MYSQL_USER" default:"igia"`
	MySQLPass string `envconfig:"MYSQL_PASS" default:"igia"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	IdempTTLSecs int `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"300"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`

	// Cron spec for the inactive-entrepreneur mail job.
	ReminderSchedule string `envconfig:"REMINDER_SCHEDULE" default:"0 8 * * *"`
	MailFrom         string `envconfig:"MAIL_FROM" default:"no-reply@igia.local"`
}

// Load reads the environment. An unparsable value (e.g. REDIS_DB=abc) is an error.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
