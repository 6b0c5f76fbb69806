// Package etfapi provides a client for the ETF platform server API.
package etfapi

import (
	"os"
	"time"
)

// Config holds configuration for the ETF API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "http://localhost:8081")
	Timeout time.Duration // HTTP request timeout
	Rate    int           // Requests per second against the upstream
}

// LoadConfig loads ETF API configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("ETF_API_BASE_URL"),
		Timeout: 10 * time.Second,
		Rate:    10,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8081"
	}
	return cfg
}
