// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"` // bearer key for the admin routes
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// AckPolicy controls which HTTP status a failed reconciliation answers
// with. Gateways treat non-2xx as "please retry", so deployments choose
// whether transient failures should invite redelivery.
type AckPolicy string

const (
	AckAlways         AckPolicy = "always"          // 200 for every outcome
	AckRetryTransient AckPolicy = "retry-transient" // 5xx for transient failures only
)

type WebhookConfig struct {
	Ack          AckPolicy     `yaml:"ack"`
	RateLimit    int           `yaml:"rate_limit"` // deliveries per source per window; 0 disables
	RateWindow   time.Duration `yaml:"rate_window"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

type TripayConfig struct {
	MerchantCode string `yaml:"merchant_code"`
	APIKey       string `yaml:"api_key"`
	PrivateKey   string `yaml:"private_key"`
	Sandbox      bool   `yaml:"sandbox"`
	DurationDays int    `yaml:"duration_days"` // payment-code validity, 1..7
	CallbackURL  string `yaml:"callback_url"`
	ReturnURL    string `yaml:"return_url"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Tripay   TripayConfig   `yaml:"tripay"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Webhook.Ack == "" {
		cfg.Webhook.Ack = AckAlways
	}
	if cfg.Webhook.RateWindow <= 0 {
		cfg.Webhook.RateWindow = time.Minute
	}
	if cfg.Webhook.MaxBodyBytes <= 0 {
		cfg.Webhook.MaxBodyBytes = 1 << 20
	}
	if cfg.Tripay.DurationDays <= 0 {
		cfg.Tripay.DurationDays = 1
	}

	// Minimal validation
	if cfg.Webhook.Ack != AckAlways && cfg.Webhook.Ack != AckRetryTransient {
		return nil, fmt.Errorf("webhook.ack must be %q or %q", AckAlways, AckRetryTransient)
	}
	if cfg.Tripay.DurationDays > 7 {
		return nil, errors.New("tripay.duration_days must be between 1 and 7")
	}
	if cfg.Tripay.MerchantCode == "" {
		return nil, errors.New("tripay.merchant_code is required")
	}
	if cfg.Tripay.APIKey == "" {
		return nil, errors.New("tripay.api_key is required")
	}
	if cfg.Tripay.PrivateKey == "" {
		return nil, errors.New("tripay.private_key is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
