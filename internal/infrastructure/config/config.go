package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the Unusual Whales MCP service
type Config struct {
	// HTTP Server - using UW_MCP_ prefix to avoid collisions
	HTTPPort  string `env:"UW_MCP_HTTP_PORT" envDefault:"8094"`
	LogLevel  string `env:"UW_MCP_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"UW_MCP_LOG_FORMAT" envDefault:"json"` // json or console
	Transport string `env:"UW_MCP_TRANSPORT" envDefault:"http"`  // http or stdio

	// Unusual Whales API
	APIToken   string `env:"UNUSUAL_WHALES_API_TOKEN"`
	APIBaseURL string `env:"UW_API_BASE_URL" envDefault:"https://api.unusualwhales.com"`

	// HTTP Client Performance
	HTTPTimeout     int `env:"UW_HTTP_TIMEOUT" envDefault:"30"`
	MaxConnsPerHost int `env:"UW_MAX_CONNS_PER_HOST" envDefault:"50"`
	MaxIdleConns    int `env:"UW_MAX_IDLE_CONNS" envDefault:"100"`
	IdleConnTimeout int `env:"UW_IDLE_CONN_TIMEOUT" envDefault:"90"`
}

// LoadConfig loads configuration from environment variables. A missing
// API token is not rejected here: requests without one get a clean
// authentication error from the API.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(os.Getenv("UW_MCP_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("UW_MCP_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}

	switch cfg.Transport {
	case "http", "stdio":
	default:
		return nil, fmt.Errorf("UW_MCP_TRANSPORT must be http or stdio, got %q", cfg.Transport)
	}

	return cfg, nil
}
