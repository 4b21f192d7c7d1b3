package config

import (
	"os"
	"strconv"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
)

type Config struct {
	API      APIConfig
	Transfer TransferConfig
	LogLevel string
	Metrics  MetricsConfig
	Sandbox  SandboxConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type TransferConfig struct {
	ConfirmWindow int
	TickInterval  time.Duration
	DefaultMemo   string
	JournalPath   string
}

type MetricsConfig struct {
	Addr string
}

type SandboxConfig struct {
	Addr string
}

func Load() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("BANK_API_URL", "http://localhost:8080/api"),
			Timeout: getDuration("BANK_HTTP_TIMEOUT", 10*time.Second),
		},
		Transfer: TransferConfig{
			ConfirmWindow: getPositiveInt("TRANSFER_CONFIRM_WINDOW", domain_transfer.DefaultConfirmWindow),
			TickInterval:  getDuration("TRANSFER_TICK", time.Second),
			DefaultMemo:   getEnv("TRANSFER_DEFAULT_MEMO", domain_transfer.DefaultMemo),
			JournalPath:   getEnv("TRANSFER_JOURNAL", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Sandbox: SandboxConfig{
			Addr: getEnv("SANDBOX_ADDR", ":8080"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
