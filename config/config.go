package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Auth     AuthConfig
	Twilio   TwilioConfig
	Reminder ReminderConfig
}

type AppConfig struct {
	Env         string        `envconfig:"APP_ENV" default:"development"`
	Port        string        `envconfig:"PORT" default:"8080"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string        `envconfig:"LOG_FORMAT" default:"json"`
	CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:4000"`
	SlowRequest time.Duration `envconfig:"SLOW_REQUEST_THRESHOLD" default:"200ms"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	URL             string        `envconfig:"DB_URL"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	LogSQL          bool          `envconfig:"DB_LOG_SQL" default:"false"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"1m"`
}

// AuthConfig gates the API behind a single shared password. Leaving both
// password fields empty disables authentication.
type AuthConfig struct {
	Password     string `envconfig:"AUTH_PASSWORD"`
	PasswordHash string `envconfig:"AUTH_PASSWORD_HASH"`
	JWTSecret    string `envconfig:"JWT_SECRET"`
	ExpiryHours  int    `envconfig:"JWT_EXPIRY_HOURS" default:"24"`
}

func (a AuthConfig) Enabled() bool {
	return a.Password != "" || a.PasswordHash != ""
}

func (a AuthConfig) TokenTTL() time.Duration {
	if a.ExpiryHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.ExpiryHours) * time.Hour
}

type TwilioConfig struct {
	AccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	PhoneNumber    string `envconfig:"TWILIO_PHONE_NUMBER"`
	WhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER"`
}

func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && (t.PhoneNumber != "" || t.WhatsAppNumber != "")
}

type ReminderConfig struct {
	Schedule string `envconfig:"REMINDER_CRON" default:"0 9 * * *"`
	Template string `envconfig:"REMINDER_TEMPLATE" default:"Hi [CustomerName], this is a reminder of your appointment on [Date] at [Time]."`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.URL == "" {
		if c.DB.Driver != DriverSQLite {
			return errors.New("DB_URL is required")
		}
		c.DB.URL = "file:quotedesk.db?_foreign_keys=1"
	}
	if c.Auth.Enabled() && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_PASSWORD or AUTH_PASSWORD_HASH is set")
	}
	return nil
}
