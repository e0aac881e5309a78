package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/segyhp/loan-tracker/pkg/logger"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	Env          string        `mapstructure:"env"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	LoanCacheTTL time.Duration `mapstructure:"loan_cache_ttl"`
}

type SchedulerConfig struct {
	StatsCron string `mapstructure:"stats_cron"`
	Timezone  string `mapstructure:"timezone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BusinessConfig struct {
	MaxTermMonths int `mapstructure:"max_term_months"`
	// Percentage points
	MaxAnnualRate float64 `mapstructure:"max_annual_rate"`
}

type HealthConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

var defaults = map[string]interface{}{
	"server.port":                "8080",
	"server.host":                "0.0.0.0",
	"server.env":                 "development",
	"server.read_timeout":        "15s",
	"server.write_timeout":       "15s",
	"database.url":               "",
	"database.host":              "",
	"database.port":              "5432",
	"database.name":              "loan_tracker",
	"database.user":              "postgres",
	"database.password":          "",
	"database.sslmode":           "disable",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"database.auto_migrate":      true,
	"redis.url":                  "",
	"redis.host":                 "localhost",
	"redis.port":                 "6379",
	"redis.password":             "",
	"redis.db":                   0,
	"redis.loan_cache_ttl":       "1h",
	"scheduler.stats_cron":       "0 */5 * * * *",
	"scheduler.timezone":         "UTC",
	"logging.level":              "info",
	"logging.format":             "json",
	"business.max_term_months":   600,
	"business.max_annual_rate":   1000,
	"health.timeout":             "5s",
}

// Load reads configuration from environment variables; database.url is read from DATABASE_URL
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database pool sizes must not be negative")
	}

	if c.Business.MaxTermMonths <= 0 {
		return fmt.Errorf("BUSINESS_MAX_TERM_MONTHS must be greater than 0")
	}

	if c.Business.MaxAnnualRate <= 0 || c.Business.MaxAnnualRate >= 100000 {
		return fmt.Errorf("BUSINESS_MAX_ANNUAL_RATE must be between 0 and 100000 exclusive")
	}

	if c.Redis.LoanCacheTTL < 0 {
		return fmt.Errorf("REDIS_LOAN_CACHE_TTL must not be negative")
	}

	if c.Health.Timeout <= 0 {
		return fmt.Errorf("HEALTH_TIMEOUT must be a positive duration")
	}

	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Scheduler.StatsCron); err != nil {
		return fmt.Errorf("SCHEDULER_STATS_CRON must be a valid cron spec: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid timezone: %w", err)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOGGING_LEVEL is invalid: %w", err)
	}

	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		return fmt.Errorf("LOGGING_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis host:port address
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// Logger returns the logger settings
func (l LoggingConfig) Logger() logger.Config {
	return logger.Config{Level: l.Level, Format: l.Format}
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetSchedulerLocation returns the scheduler timezone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
