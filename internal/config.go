package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"http_server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Security     SecurityConfig     `mapstructure:"security"`
	SMTP         SMTPConfig         `mapstructure:"smtp"`
	Notification NotificationConfig `mapstructure:"notification"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" env:"SERVER_PORT" envDefault:"8080"`
	BaseURL           string        `mapstructure:"base_url" env:"SERVER_BASE_URL"`
	AllowedOrigins    string        `mapstructure:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" envDefault:"*"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" env:"DATABASE_DRIVER" envDefault:"postgres"`
	Source          string        `mapstructure:"source" env:"DATABASE_SOURCE"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"DATABASE_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

type SecurityConfig struct {
	AccessTokenSecret    string        `mapstructure:"access_token_secret" env:"SECURITY_ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret   string        `mapstructure:"refresh_token_secret" env:"SECURITY_REFRESH_TOKEN_SECRET"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration" env:"SECURITY_ACCESS_TOKEN_DURATION" envDefault:"15m"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration" env:"SECURITY_REFRESH_TOKEN_DURATION" envDefault:"168h"`
	BCryptCost           int           `mapstructure:"bcrypt_cost" env:"SECURITY_BCRYPT_COST" envDefault:"10"`
}

// SMTPConfig is the bootstrap SMTP transport configuration. Admin-saved
// settings in the smtp_settings table take precedence at send time.
type SMTPConfig struct {
	Host      string `mapstructure:"host" env:"SMTP_HOST"`
	Port      int    `mapstructure:"port" env:"SMTP_PORT" envDefault:"587"`
	Username  string `mapstructure:"username" env:"SMTP_USERNAME"`
	Password  string `mapstructure:"password" env:"SMTP_PASSWORD"`
	FromEmail string `mapstructure:"from_email" env:"SMTP_FROM_EMAIL"`
	FromName  string `mapstructure:"from_name" env:"SMTP_FROM_NAME" envDefault:"Petty Cash System"`
}

type NotificationConfig struct {
	Backend      string        `mapstructure:"backend" env:"NOTIFICATION_BACKEND" envDefault:"smtp"`
	EmailAPIURL  string        `mapstructure:"email_api_url" env:"NOTIFICATION_EMAIL_API_URL"`
	EmailAPIKey  string        `mapstructure:"email_api_key" env:"NOTIFICATION_EMAIL_API_KEY"`
	SendTimeout  time.Duration `mapstructure:"send_timeout" env:"NOTIFICATION_SEND_TIMEOUT" envDefault:"10s"`
	MaxWorkers   int           `mapstructure:"max_workers" env:"NOTIFICATION_MAX_WORKERS" envDefault:"4"`
	JobQueueSize int           `mapstructure:"job_queue_size" env:"NOTIFICATION_JOB_QUEUE_SIZE" envDefault:"100"`
	MaxRetries   int           `mapstructure:"max_retries" env:"NOTIFICATION_MAX_RETRIES" envDefault:"3"`
}

type StorageConfig struct {
	ReceiptDir string `mapstructure:"receipt_dir" env:"STORAGE_RECEIPT_DIR" envDefault:"./uploads/receipts"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LOGGING_LEVEL" envDefault:"info"`
	Format string `mapstructure:"format" env:"LOGGING_FORMAT" envDefault:"text"`
}

// LoadConfigFromEnv builds the configuration from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}
	return &cfg, nil
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Notification.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("notification config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != "postgres" && c.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access token secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh token secret must be at least 32 characters")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	return nil
}

func (c *NotificationConfig) Validate() error {
	switch c.Backend {
	case "smtp":
	case "email_api":
		if c.EmailAPIURL == "" {
			return errors.New("email_api_url is required for the email_api backend")
		}
	default:
		return fmt.Errorf("unsupported notification backend %q", c.Backend)
	}
	return nil
}
