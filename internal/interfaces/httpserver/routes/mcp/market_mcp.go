package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/study-flamingo/unusualwhales-mcp/internal/domain/market"
	"github.com/study-flamingo/unusualwhales-mcp/internal/infrastructure/metrics"
	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

// FlowAlertsArgs defines the arguments for the get_flow_alerts tool
type FlowAlertsArgs struct {
	AllOpening       *bool    `json:"all_opening,omitempty"`
	IsAskSide        *bool    `json:"is_ask_side,omitempty"`
	IsBidSide        *bool    `json:"is_bid_side,omitempty"`
	IsCall           *bool    `json:"is_call,omitempty"`
	IsFloor          *bool    `json:"is_floor,omitempty"`
	IsOtm            *bool    `json:"is_otm,omitempty"`
	IsPut            *bool    `json:"is_put,omitempty"`
	IsSweep          *bool    `json:"is_sweep,omitempty"`
	IssueTypes       []string `json:"issue_types,omitempty"`
	Limit            *int     `json:"limit,omitempty"`
	MaxDiff          *float64 `json:"max_diff,omitempty"`
	MaxDte           *int     `json:"max_dte,omitempty"`
	MaxOpenInterest  *int     `json:"max_open_interest,omitempty"`
	MaxPremium       *int     `json:"max_premium,omitempty"`
	MaxSize          *int     `json:"max_size,omitempty"`
	MaxVolume        *int     `json:"max_volume,omitempty"`
	MaxVolumeOiRatio *float64 `json:"max_volume_oi_ratio,omitempty"`
	MinDiff          *float64 `json:"min_diff,omitempty"`
	MinDte           *int     `json:"min_dte,omitempty"`
	MinOpenInterest  *int     `json:"min_open_interest,omitempty"`
	MinPremium       *int     `json:"min_premium,omitempty"`
	MinSize          *int     `json:"min_size,omitempty"`
	MinVolume        *int     `json:"min_volume,omitempty"`
	MinVolumeOiRatio *float64 `json:"min_volume_oi_ratio,omitempty"`
	NewerThan        *string  `json:"newer_than,omitempty"`
	OlderThan        *string  `json:"older_than,omitempty"`
	RuleName         []string `json:"rule_name,omitempty"`
	TickerSymbol     *string  `json:"ticker_symbol,omitempty"`
}

// TickerInfoArgs defines the arguments for the get_ticker_info tool
type TickerInfoArgs struct {
	Ticker string `json:"ticker"`
}

// StockStateArgs defines the arguments for the get_stock_state tool
type StockStateArgs struct {
	Ticker string `json:"ticker"`
}

// InstitutionHoldingsArgs defines the arguments for the get_institution_holdings tool
type InstitutionHoldingsArgs struct {
	Name           string   `json:"name"`
	Date           *string  `json:"date,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	EndDate        *string  `json:"end_date,omitempty"`
	SecurityTypes  []string `json:"security_types,omitempty"`
	Limit          *int     `json:"limit,omitempty"`
	Page           *int     `json:"page,omitempty"`
	Order          *string  `json:"order,omitempty"`
	OrderDirection *string  `json:"order_direction,omitempty"`
}

// InsiderTransactionsArgs defines the arguments for the get_insider_transactions tool
type InsiderTransactionsArgs struct {
	TickerSymbol      *string  `json:"ticker_symbol,omitempty"`
	MinValue          *string  `json:"min_value,omitempty"`
	MaxValue          *string  `json:"max_value,omitempty"`
	MinPrice          *string  `json:"min_price,omitempty"`
	MaxPrice          *string  `json:"max_price,omitempty"`
	OwnerName         *string  `json:"owner_name,omitempty"`
	Sectors           *string  `json:"sectors,omitempty"`
	Industries        *string  `json:"industries,omitempty"`
	MinMarketcap      *string  `json:"min_marketcap,omitempty"`
	MaxMarketcap      *string  `json:"max_marketcap,omitempty"`
	MarketCapSize     *string  `json:"market_cap_size,omitempty"`
	MinEarningsDte    *string  `json:"min_earnings_dte,omitempty"`
	MaxEarningsDte    *string  `json:"max_earnings_dte,omitempty"`
	MinAmount         *string  `json:"min_amount,omitempty"`
	MaxAmount         *string  `json:"max_amount,omitempty"`
	IsDirector        *bool    `json:"is_director,omitempty"`
	IsOfficer         *bool    `json:"is_officer,omitempty"`
	IsSP500           *bool    `json:"is_s_p_500,omitempty"`
	IsTenPercentOwner *bool    `json:"is_ten_percent_owner,omitempty"`
	CommonStockOnly   *bool    `json:"common_stock_only,omitempty"`
	TransactionCodes  []string `json:"transaction_codes,omitempty"`
	SecurityAdCodes   *string  `json:"security_ad_codes,omitempty"`
	Limit             *int     `json:"limit,omitempty"`
	Page              *int     `json:"page,omitempty"`
}

// CongressTradesArgs defines the arguments for the get_congress_trades tool
type CongressTradesArgs struct {
	Limit  *int    `json:"limit,omitempty"`
	Date   *string `json:"date,omitempty"`
	Ticker *string `json:"ticker,omitempty"`
}

// NewsHeadlinesArgs defines the arguments for the get_news_headlines tool
type NewsHeadlinesArgs struct {
	Sources    *string `json:"sources,omitempty"`
	SearchTerm *string `json:"search_term,omitempty"`
	MajorOnly  *bool   `json:"major_only,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
	Page       *int    `json:"page,omitempty"`
}

type marketToolPayload struct {
	Endpoint  string          `json:"endpoint"`
	Rows      int             `json:"rows"`
	Columns   []string        `json:"columns"`
	Records   []market.Record `json:"records"`
	FetchedAt string          `json:"fetched_at"`
}

// MarketMCP handles MCP tool registration for market data tooling.
type MarketMCP struct {
	marketService *market.MarketService
}

// NewMarketMCP creates a new market data MCP handler.
func NewMarketMCP(marketService *market.MarketService) *MarketMCP {
	return &MarketMCP{marketService: marketService}
}

// Tool key constants
const (
	ToolKeyFlowAlerts          = "get_flow_alerts"
	ToolKeyTickerInfo          = "get_ticker_info"
	ToolKeyStockState          = "get_stock_state"
	ToolKeyInstitutionHoldings = "get_institution_holdings"
	ToolKeyInsiderTransactions = "get_insider_transactions"
	ToolKeyCongressTrades      = "get_congress_trades"
	ToolKeyNewsHeadlines       = "get_news_headlines"
)

var toolDescriptions = map[string]string{
	ToolKeyFlowAlerts:          "Fetch option flow alerts from Unusual Whales, filtered by side, option type, premium, size, volume, DTE and ticker. Returns normalized rows with exact premium and price figures.",
	ToolKeyTickerInfo:          "Fetch descriptive information for a single ticker (sector, market cap, average volume, next earnings date). Unknown tickers return an empty result.",
	ToolKeyStockState:          "Fetch the latest trading state (open, high, low, close, volume) for a single ticker.",
	ToolKeyInstitutionHoldings: "Fetch reported holdings for an institution by name or CIK, optionally filtered by report date range and security type.",
	ToolKeyInsiderTransactions: "Fetch aggregated insider transactions, filtered by ticker, value, price, owner, sector, marketcap and transaction codes.",
	ToolKeyCongressTrades:      "Fetch recent congressional trade reports, optionally filtered by date and ticker.",
	ToolKeyNewsHeadlines:       "Fetch recent financial news headlines, optionally filtered by source, search term and significance.",
}

// RegisterTools registers market data tools with the MCP server
func (m *MarketMCP) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyFlowAlerts,
		Description: toolDescriptions[ToolKeyFlowAlerts],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input FlowAlertsArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyFlowAlerts, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.FlowAlerts(ctx, market.FlowAlertsRequest{
				AllOpening:       input.AllOpening,
				IsAskSide:        input.IsAskSide,
				IsBidSide:        input.IsBidSide,
				IsCall:           input.IsCall,
				IsFloor:          input.IsFloor,
				IsOtm:            input.IsOtm,
				IsPut:            input.IsPut,
				IsSweep:          input.IsSweep,
				IssueTypes:       input.IssueTypes,
				Limit:            input.Limit,
				MaxDiff:          input.MaxDiff,
				MaxDte:           input.MaxDte,
				MaxOpenInterest:  input.MaxOpenInterest,
				MaxPremium:       input.MaxPremium,
				MaxSize:          input.MaxSize,
				MaxVolume:        input.MaxVolume,
				MaxVolumeOiRatio: input.MaxVolumeOiRatio,
				MinDiff:          input.MinDiff,
				MinDte:           input.MinDte,
				MinOpenInterest:  input.MinOpenInterest,
				MinPremium:       input.MinPremium,
				MinSize:          input.MinSize,
				MinVolume:        input.MinVolume,
				MinVolumeOiRatio: input.MinVolumeOiRatio,
				NewerThan:        input.NewerThan,
				OlderThan:        input.OlderThan,
				RuleNames:        input.RuleName,
				TickerSymbol:     input.TickerSymbol,
			})
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyTickerInfo,
		Description: toolDescriptions[ToolKeyTickerInfo],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input TickerInfoArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyTickerInfo, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.TickerInfo(ctx, market.TickerInfoRequest{Ticker: input.Ticker})
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyStockState,
		Description: toolDescriptions[ToolKeyStockState],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input StockStateArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyStockState, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.StockState(ctx, market.StockStateRequest{Ticker: input.Ticker})
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyInstitutionHoldings,
		Description: toolDescriptions[ToolKeyInstitutionHoldings],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input InstitutionHoldingsArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyInstitutionHoldings, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.InstitutionHoldings(ctx, market.InstitutionHoldingsRequest{
				Name:           input.Name,
				Date:           input.Date,
				StartDate:      input.StartDate,
				EndDate:        input.EndDate,
				SecurityTypes:  input.SecurityTypes,
				Limit:          input.Limit,
				Page:           input.Page,
				Order:          input.Order,
				OrderDirection: input.OrderDirection,
			})
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyInsiderTransactions,
		Description: toolDescriptions[ToolKeyInsiderTransactions],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input InsiderTransactionsArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyInsiderTransactions, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.InsiderTransactions(ctx, market.InsiderTransactionsRequest{
				TickerSymbol:      input.TickerSymbol,
				MinValue:          input.MinValue,
				MaxValue:          input.MaxValue,
				MinPrice:          input.MinPrice,
				MaxPrice:          input.MaxPrice,
				OwnerName:         input.OwnerName,
				Sectors:           input.Sectors,
				Industries:        input.Industries,
				MinMarketcap:      input.MinMarketcap,
				MaxMarketcap:      input.MaxMarketcap,
				MarketCapSize:     input.MarketCapSize,
				MinEarningsDte:    input.MinEarningsDte,
				MaxEarningsDte:    input.MaxEarningsDte,
				MinAmount:         input.MinAmount,
				MaxAmount:         input.MaxAmount,
				IsDirector:        input.IsDirector,
				IsOfficer:         input.IsOfficer,
				IsSP500:           input.IsSP500,
				IsTenPercentOwner: input.IsTenPercentOwner,
				CommonStockOnly:   input.CommonStockOnly,
				TransactionCodes:  input.TransactionCodes,
				SecurityAdCodes:   input.SecurityAdCodes,
				Limit:             input.Limit,
				Page:              input.Page,
			})
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyCongressTrades,
		Description: toolDescriptions[ToolKeyCongressTrades],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CongressTradesArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyCongressTrades, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.CongressTrades(ctx, market.CongressTradesRequest{
				Limit:  input.Limit,
				Date:   input.Date,
				Ticker: input.Ticker,
			})
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyNewsHeadlines,
		Description: toolDescriptions[ToolKeyNewsHeadlines],
	}, func(ctx context.Context, req *mcp.CallToolRequest, input NewsHeadlinesArgs) (*mcp.CallToolResult, marketToolPayload, error) {
		return m.runTool(ctx, ToolKeyNewsHeadlines, input, func(ctx context.Context) (*market.RecordSet, error) {
			return m.marketService.NewsHeadlines(ctx, market.NewsHeadlinesRequest{
				Sources:    input.Sources,
				SearchTerm: input.SearchTerm,
				MajorOnly:  input.MajorOnly,
				Limit:      input.Limit,
				Page:       input.Page,
			})
		})
	})
}

// runTool executes one tool call: it logs the invocation, runs the
// fetch, records metrics and shapes the uniform tabular payload.
// Upstream failures come back as IsError results with the error kind in
// the text, never as protocol errors.
func (m *MarketMCP) runTool(ctx context.Context, toolName string, input any, fetch func(context.Context) (*market.RecordSet, error)) (*mcp.CallToolResult, marketToolPayload, error) {
	startTime := time.Now()

	log.Info().
		Str("tool", toolName).
		Msg("MCP tool call received")
	if log.Debug().Enabled() {
		argsJSON, _ := json.Marshal(input)
		log.Debug().
			Str("tool", toolName).
			RawJSON("args", argsJSON).
			Msg("tool call arguments")
	}

	set, err := fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Str("tool", toolName).Msg("market data fetch failed")

		payload := marketToolPayload{
			Endpoint:  toolName,
			Rows:      0,
			Columns:   []string{},
			Records:   []market.Record{},
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
		}
		text := err.Error()
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			payload.Endpoint = apiErr.Endpoint
			text = string(apiErr.Kind) + ": " + apiErr.Message
			if apiErr.Body != "" {
				text += "\n" + apiErr.Body
			}
		}
		metrics.RecordToolCall(toolName, "error", time.Since(startTime).Seconds())
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
			IsError: true,
		}, payload, nil
	}

	payload := marketToolPayload{
		Endpoint:  toolName,
		Rows:      set.Len(),
		Columns:   set.Columns,
		Records:   set.Records,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if payload.Columns == nil {
		payload.Columns = []string{}
	}
	if payload.Records == nil {
		payload.Records = []market.Record{}
	}

	metrics.RecordToolCall(toolName, "success", time.Since(startTime).Seconds())
	log.Debug().
		Str("tool", toolName).
		Int("rows", payload.Rows).
		Msg("tool call completed")
	return nil, payload, nil
}
