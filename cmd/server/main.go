package main

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/study-flamingo/unusualwhales-mcp/internal/domain/market"
	"github.com/study-flamingo/unusualwhales-mcp/internal/infrastructure/config"
	"github.com/study-flamingo/unusualwhales-mcp/internal/infrastructure/logger"
	"github.com/study-flamingo/unusualwhales-mcp/internal/infrastructure/uwapi"
	"github.com/study-flamingo/unusualwhales-mcp/internal/interfaces/httpserver"
	mcproutes "github.com/study-flamingo/unusualwhales-mcp/internal/interfaces/httpserver/routes/mcp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Str("transport", cfg.Transport).
		Msg("Starting Unusual Whales MCP service")

	if cfg.APIToken == "" {
		log.Warn().Msg("UNUSUAL_WHALES_API_TOKEN is not set, upstream calls will fail with authentication errors")
	}

	// Initialize infrastructure
	client := uwapi.NewClient(uwapi.ClientConfig{
		BaseURL:         cfg.APIBaseURL,
		Token:           cfg.APIToken,
		HTTPTimeout:     time.Duration(cfg.HTTPTimeout) * time.Second,
		MaxConnsPerHost: cfg.MaxConnsPerHost,
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: time.Duration(cfg.IdleConnTimeout) * time.Second,
	})
	marketService := market.NewMarketService(client)

	// Initialize MCP routes
	marketMCP := mcproutes.NewMarketMCP(marketService)
	mcpRoute := mcproutes.NewMCPRoute(marketMCP)

	if cfg.Transport == "stdio" {
		if err := mcpRoute.Server().Run(context.Background(), &mcpsdk.StdioTransport{}); err != nil {
			log.Fatal().Err(err).Msg("stdio transport stopped")
		}
		return
	}

	// Setup HTTP server
	server := httpserver.NewHTTPServer(cfg, mcpRoute)
	log.Info().Str("address", ":"+cfg.HTTPPort).Msg("Server listening")
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
