// Package config loads application configuration from a YAML file with
// environment variable overrides for secrets and deployment settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	SES      SESConfig      `yaml:"ses"`
	Mailgun  MailgunConfig  `yaml:"mailgun"`
	Email    EmailConfig    `yaml:"email"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, honoring container and env overrides.
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds the Postgres connection settings
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the optional Redis connection used by the dispatch
// ledger. Disabled means the scheduler runs without the ledger.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"`
}

// SESConfig holds AWS SES API configuration
type SESConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c SESConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MailgunConfig holds Mailgun API configuration
type MailgunConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Domain         string `yaml:"domain"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c MailgunConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EmailConfig holds the sender identity and provider selection.
// Provider is one of "ses", "mailgun" or "log".
type EmailConfig struct {
	Provider  string `yaml:"provider"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
}

// ScheduleConfig holds the initial automated reminder schedule. The running
// value lives in the scheduler's config store and may be replaced at
// runtime through the admin API; this section only seeds it.
type ScheduleConfig struct {
	// EmailDays are weekday indices, 0=Sunday through 6=Saturday.
	EmailDays  []int    `yaml:"email_days"`
	Recipients []string `yaml:"recipients"`
	EmailType  string   `yaml:"email_type"`
	Enabled    bool     `yaml:"enabled"`
	// SendHour is the local hour (0-23) at which the daily trigger fires.
	SendHour int `yaml:"send_hour"`
}

// Pickup converts the YAML schedule section into the domain config value.
func (c ScheduleConfig) Pickup() (pickup.ScheduleConfig, error) {
	emailType, err := pickup.ParseEmailType(c.EmailType)
	if err != nil {
		return pickup.ScheduleConfig{}, err
	}

	days := make([]time.Weekday, 0, len(c.EmailDays))
	for _, d := range c.EmailDays {
		if d < 0 || d > 6 {
			return pickup.ScheduleConfig{}, fmt.Errorf("invalid weekday index %d in schedule.email_days", d)
		}
		days = append(days, time.Weekday(d))
	}

	cfg := pickup.ScheduleConfig{
		EmailDays:  days,
		Recipients: c.Recipients,
		EmailType:  emailType,
		Enabled:    c.Enabled,
	}
	if err := cfg.Validate(); err != nil {
		return pickup.ScheduleConfig{}, err
	}
	return cfg, nil
}

// Default returns a config with sensible defaults. The schedule mirrors the
// shipped behavior: current-week reminders on Monday and Thursday.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		SES: SESConfig{
			Region:         "us-east-1",
			TimeoutSeconds: 30,
		},
		Mailgun: MailgunConfig{
			BaseURL:        "https://api.mailgun.net/v3",
			TimeoutSeconds: 30,
		},
		Email: EmailConfig{
			Provider:  "log",
			FromName:  "FEDS Pickup Scheduler",
			FromEmail: "no-reply@localhost",
		},
		Schedule: ScheduleConfig{
			EmailDays:  []int{1, 4},
			Recipients: []string{"feds201business@gmail.com"},
			EmailType:  "week",
			Enabled:    true,
			SendHour:   6,
		},
	}
}

// Load reads configuration from a YAML file, starting from defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads the YAML file if present, then applies .env and
// environment variable overrides. A missing file is not an error; defaults
// plus environment are enough to run in development.
func LoadFromEnv(path string) (*Config, error) {
	var cfg *Config

	if _, err := os.Stat(path); err == nil {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = Default()
	}

	// Load .env if present; real env vars still win.
	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.SES.Region = v
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		cfg.Mailgun.APIKey = v
	}
	if v := os.Getenv("MAILGUN_BASE_URL"); v != "" {
		cfg.Mailgun.BaseURL = v
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		cfg.Mailgun.Domain = v
	}
	if v := os.Getenv("EMAIL_PROVIDER"); v != "" {
		cfg.Email.Provider = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.FromEmail = v
	}
	if v := os.Getenv("REMINDER_RECIPIENTS"); v != "" {
		cfg.Schedule.Recipients = splitAndTrim(v)
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
