package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/study-flamingo/unusualwhales-mcp/internal/interfaces/httpserver/responses"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,

	// Prompts
	"prompts/list": true,
	"prompts/call": true,

	// Resources
	"resources/list":           true,
	"resources/templates/list": true,
	"resources/read":           true,
	"resources/subscribe":      true,
}

type MCPRoute struct {
	marketMCP   *MarketMCP
	mcpServer   *mcp.Server
	httpHandler http.Handler
}

func NewMCPRoute(marketMCP *MarketMCP) *MCPRoute {
	impl := &mcp.Implementation{
		Name:    "unusualwhales-mcp",
		Version: "1.0.0",
	}
	server := mcp.NewServer(impl, nil)

	marketMCP.RegisterTools(server)

	return &MCPRoute{
		marketMCP: marketMCP,
		mcpServer: server,
		httpHandler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{Stateless: true}),
	}
}

// Server exposes the underlying MCP server for non-HTTP transports.
func (route *MCPRoute) Server() *mcp.Server {
	return route.mcpServer
}

func (route *MCPRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		route.serveMCP,
	)
}

// serveMCP streams Model Context Protocol responses using the underlying MCP server.
func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// Force acceptable content types for go-sdk streamable handler even if client omits Accept.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleValidationError(reqCtx, "failed to read MCP request body")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleValidationError(reqCtx, "empty MCP request body")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleValidationError(reqCtx, "invalid MCP request payload")
			return
		}

		if payload.Method == "" {
			responses.HandleValidationError(reqCtx, "missing method field in MCP request")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleValidationError(reqCtx, "unsupported MCP method: "+payload.Method)
			return
		}

		reqCtx.Next()
	}
}
