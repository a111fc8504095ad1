package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string
	RedisURL    string

	JWTSecret       string
	Issuer          string
	Audience        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PasswordPepper  string

	HTTPAddress      string
	AllowedOrigins   []string
	AllowCredentials bool

	MailgunDomain  string
	MailgunAPIKey  string
	MailgunBaseURL string
	MailFromName   string
	MailTimeout    time.Duration
	MailQueue      string
	MailWorkers    int

	MetricsAddress string
	LogLevel       string
}

var required = []string{
	"DATABASE_URL",
	"JWT_SECRET_KEY",
}

// Load reads the account service configuration.
func Load() (*Config, error) {
	return load(required)
}

// LoadWorker reads the configuration of the mail worker, which touches
// neither the database nor tokens.
func LoadWorker() (*Config, error) {
	return load(nil)
}

func load(required []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("ALLOW_CREDENTIALS", false)
	v.SetDefault("MAILGUN_BASE_URL", "https://api.mailgun.net/v3")
	v.SetDefault("MAIL_FROM_NAME", "Account Service")
	v.SetDefault("MAIL_TIMEOUT", "5s")
	v.SetDefault("MAIL_QUEUE", "queue:mail")
	v.SetDefault("MAIL_WORKERS", 2)
	v.SetDefault("METRICS_ADDRESS", ":9091")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL", "REDIS_URL", "JWT_SECRET_KEY", "JWT_ISSUER", "JWT_AUDIENCE",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "PASSWORD_PEPPER", "HTTP_ADDRESS",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "MAILGUN_DOMAIN", "MAILGUN_API_KEY",
		"MAILGUN_BASE_URL", "MAIL_FROM_NAME", "MAIL_TIMEOUT", "MAIL_QUEUE", "MAIL_WORKERS",
		"METRICS_ADDRESS", "LOG_LEVEL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for _, key := range required {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	origins, err := parseOrigins(v.GetString("ALLOWED_ORIGINS"))
	if err != nil {
		return nil, fmt.Errorf("ALLOWED_ORIGINS: %w", err)
	}

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisURL:         v.GetString("REDIS_URL"),
		JWTSecret:        v.GetString("JWT_SECRET_KEY"),
		Issuer:           v.GetString("JWT_ISSUER"),
		Audience:         v.GetString("JWT_AUDIENCE"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		AllowedOrigins:   origins,
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		MailgunDomain:    v.GetString("MAILGUN_DOMAIN"),
		MailgunAPIKey:    v.GetString("MAILGUN_API_KEY"),
		MailgunBaseURL:   v.GetString("MAILGUN_BASE_URL"),
		MailFromName:     v.GetString("MAIL_FROM_NAME"),
		MailTimeout:      v.GetDuration("MAIL_TIMEOUT"),
		MailQueue:        v.GetString("MAIL_QUEUE"),
		MailWorkers:      v.GetInt("MAIL_WORKERS"),
		MetricsAddress:   v.GetString("METRICS_ADDRESS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}
	if cfg.AccessTokenTTL >= cfg.RefreshTokenTTL {
		return nil, errors.New("ACCESS_TOKEN_TTL must be shorter than REFRESH_TOKEN_TTL")
	}
	if cfg.MailWorkers < 1 {
		cfg.MailWorkers = 1
	}
	return cfg, nil
}

// parseOrigins accepts either a JSON array or a comma separated list.
func parseOrigins(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out, nil
}
