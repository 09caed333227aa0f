package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	DatabaseURL   string `envconfig:"DATABASE_URL"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	SessionBackend string        `envconfig:"SESSION_BACKEND" default:"memory"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"72h"`
	RedisURL       string        `envconfig:"REDIS_URL"`

	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	Gupshup GupshupConfig
	Mail    MailConfig

	OwnerNumber        string `envconfig:"OWNER_NUMBER"`
	OwnerEmail         string `envconfig:"OWNER_EMAIL"`
	ReminderTemplateID string `envconfig:"REMINDER_TEMPLATE_ID" default:"09d6c1db-a107-4621-8543-4a7a608c9919"`
	ReviewTemplateID   string `envconfig:"REVIEW_TEMPLATE_ID" default:"db504bec-4dd8-4f04-978c-4ddaea2ca0c6"`

	Timezone    string   `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
	ContentPath string   `envconfig:"CONTENT_PATH"`
	ChatRate    int      `envconfig:"CHAT_RATE_LIMIT" default:"10"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

type GupshupConfig struct {
	APIKey       string `envconfig:"GUPSHUP_API_KEY"`
	AppName      string `envconfig:"GUPSHUP_APP_NAME"`
	SourceNumber string `envconfig:"GUPSHUP_SOURCE_NUMBER"`
	BaseURL      string `envconfig:"GUPSHUP_BASE_URL" default:"https://api.gupshup.io/wa/api/v1"`
}

type MailConfig struct {
	Host     string `envconfig:"MAIL_HOST"`
	Port     int    `envconfig:"MAIL_PORT" default:"587"`
	User     string `envconfig:"MAIL_USER"`
	Password string `envconfig:"MAIL_PASS"`
	From     string `envconfig:"MAIL_FROM" default:"no-reply@localhost"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.SessionBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) MailEnabled() bool {
	return c.Mail.Host != "" && c.OwnerEmail != ""
}

func (c *Config) GupshupEnabled() bool {
	return c.Gupshup.APIKey != "" && c.Gupshup.SourceNumber != ""
}
