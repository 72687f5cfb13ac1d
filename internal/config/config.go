package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress              string
	DatabaseURI             string
	RedisAddress            string
	GatewayAddress          string
	HookSecret              string
	AdminKeyHash            string
	DisplayCurrency         string
	SettlementCurrency      string
	DisplayToSettlementRate string
	SettlementToDisplayRate string
	SessionTTL              time.Duration
	RefundPollInterval      time.Duration
	WorkerPoolSize          int
	ShutdownTimeout         time.Duration
	MaxRefundBatch          int
}

const (
	defaultRunAddress         = ":8080"
	defaultHookSecret         = "change-me-in-production"
	defaultDisplayCurrency    = "USD"
	defaultSettlementCurrency = "EUR"
	defaultRate               = "0.9133"
	defaultSessionTTL         = 30 * time.Minute
	defaultRefundPollInterval = 5 * time.Second
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultMaxRefundBatch     = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:              getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:             getString(lookup, "DATABASE_URI", ""),
		RedisAddress:            getString(lookup, "REDIS_ADDRESS", ""),
		GatewayAddress:          getString(lookup, "GATEWAY_ADDRESS", ""),
		HookSecret:              getString(lookup, "HOOK_SECRET", defaultHookSecret),
		AdminKeyHash:            getString(lookup, "ADMIN_KEY_HASH", ""),
		DisplayCurrency:         getString(lookup, "DISPLAY_CURRENCY", defaultDisplayCurrency),
		SettlementCurrency:      getString(lookup, "SETTLEMENT_CURRENCY", defaultSettlementCurrency),
		DisplayToSettlementRate: getString(lookup, "DISPLAY_TO_SETTLEMENT_RATE", defaultRate),
		SettlementToDisplayRate: getString(lookup, "SETTLEMENT_TO_DISPLAY_RATE", ""),
		SessionTTL:              getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		RefundPollInterval:      getDuration(lookup, "REFUND_POLL_INTERVAL", defaultRefundPollInterval),
		WorkerPoolSize:          getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:         getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxRefundBatch:          getInt(lookup, "REFUND_BATCH_SIZE", defaultMaxRefundBatch),
	}

	fs := flag.NewFlagSet("gatewaycurrency", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		pollIntervalStr    = cfg.RefundPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for report cache invalidation")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.HookSecret, "hook-secret", cfg.HookSecret, "Secret for signing platform hook requests")
	fs.StringVar(&cfg.AdminKeyHash, "admin-key-hash", cfg.AdminKeyHash, "Bcrypt hash of the admin API key")
	fs.StringVar(&cfg.DisplayCurrency, "display-currency", cfg.DisplayCurrency, "Currency code shown to shoppers")
	fs.StringVar(&cfg.SettlementCurrency, "settlement-currency", cfg.SettlementCurrency, "Currency code sent to the gateway")
	fs.StringVar(&cfg.DisplayToSettlementRate, "rate", cfg.DisplayToSettlementRate, "Fixed display to settlement conversion rate")
	fs.StringVar(&cfg.SettlementToDisplayRate, "reverse-rate", cfg.SettlementToDisplayRate, "Fixed settlement to display rate (default: reciprocal of -rate)")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent refund workers")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Lifetime of pending checkout totals")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between gateway refund polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxRefundBatch, "poll-batch", cfg.MaxRefundBatch, "Maximum refunds per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.RefundPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("HOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read hook secret file: %w", err)
		}
		cfg.HookSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxRefundBatch <= 0 {
		cfg.MaxRefundBatch = defaultMaxRefundBatch
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.RefundPollInterval <= 0 {
		cfg.RefundPollInterval = defaultRefundPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("gateway address must be provided")
	}

	if cfg.DisplayCurrency == cfg.SettlementCurrency {
		return nil, fmt.Errorf("display and settlement currencies must differ")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
