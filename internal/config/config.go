package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment.
type Config struct {
	RunAddress      string        `mapstructure:"RUN_ADDRESS"`
	DatabaseURI     string        `mapstructure:"DATABASE_URI"`
	TokenSecret     string        `mapstructure:"TOKEN_SECRET"`
	AdminKeyHash    string        `mapstructure:"ADMIN_KEY_HASH"`
	MailerAddress   string        `mapstructure:"MAILER_ADDRESS"`
	MailerTimeout   time.Duration `mapstructure:"MAILER_TIMEOUT"`
	PaymentAddress  string        `mapstructure:"PAYMENT_ADDRESS"`
	PaymentSecret   string        `mapstructure:"PAYMENT_SECRET_KEY"`
	PaymentAPIKey   string        `mapstructure:"PAYMENT_API_KEY"`
	UploadsAddress  string        `mapstructure:"UPLOADS_ADDRESS"`
	SweepInterval   time.Duration `mapstructure:"COUPON_SWEEP_INTERVAL"`
	SweepBatchSize  int           `mapstructure:"COUPON_SWEEP_BATCH"`
	WorkerPoolSize  int           `mapstructure:"WORKER_POOL_SIZE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

const (
	defaultRunAddress      = ":8080"
	defaultMailerTimeout   = 5 * time.Second
	defaultSweepInterval   = time.Minute
	defaultSweepBatchSize  = 32
	defaultWorkerPoolSize  = 4
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("MAILER_TIMEOUT", defaultMailerTimeout)
	v.SetDefault("COUPON_SWEEP_INTERVAL", defaultSweepInterval)
	v.SetDefault("COUPON_SWEEP_BATCH", defaultSweepBatchSize)
	v.SetDefault("WORKER_POOL_SIZE", defaultWorkerPoolSize)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)

	for _, key := range []string{
		"DATABASE_URI", "TOKEN_SECRET", "ADMIN_KEY_HASH",
		"MAILER_ADDRESS", "PAYMENT_ADDRESS", "PAYMENT_SECRET_KEY",
		"PAYMENT_API_KEY", "UPLOADS_ADDRESS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return validate(&cfg)
}

func validate(cfg *Config) (*Config, error) {
	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("token secret must be provided")
	}
	if cfg.AdminKeyHash == "" {
		return nil, fmt.Errorf("admin key hash must be provided")
	}
	if cfg.MailerAddress == "" {
		return nil, fmt.Errorf("mailer address must be provided")
	}

	if cfg.MailerTimeout <= 0 {
		cfg.MailerTimeout = defaultMailerTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return cfg, nil
}
