package mcp

import (
	"context"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/study-flamingo/unusualwhales-mcp/internal/domain/market"
	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

type stubMarketClient struct {
	set *market.RecordSet
	err error
}

func (s *stubMarketClient) FlowAlerts(ctx context.Context, req market.FlowAlertsRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func (s *stubMarketClient) TickerInfo(ctx context.Context, req market.TickerInfoRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func (s *stubMarketClient) StockState(ctx context.Context, req market.StockStateRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func (s *stubMarketClient) InstitutionHoldings(ctx context.Context, req market.InstitutionHoldingsRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func (s *stubMarketClient) InsiderTransactions(ctx context.Context, req market.InsiderTransactionsRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func (s *stubMarketClient) CongressTrades(ctx context.Context, req market.CongressTradesRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func (s *stubMarketClient) NewsHeadlines(ctx context.Context, req market.NewsHeadlinesRequest) (*market.RecordSet, error) {
	return s.set, s.err
}

func newStubMCP(set *market.RecordSet, err error) *MarketMCP {
	service := market.NewMarketService(&stubMarketClient{set: set, err: err})
	return NewMarketMCP(service)
}

func TestRunToolBuildsPayload(t *testing.T) {
	set := &market.RecordSet{
		Columns: []string{"ticker", "close"},
		Records: []market.Record{{"ticker": "AAPL", "close": "231.40"}},
	}
	m := newStubMCP(set, nil)

	result, payload, err := m.runTool(context.Background(), ToolKeyStockState, StockStateArgs{Ticker: "AAPL"}, func(ctx context.Context) (*market.RecordSet, error) {
		return m.marketService.StockState(ctx, market.StockStateRequest{Ticker: "AAPL"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("success must not return an explicit result, got %+v", result)
	}
	if payload.Rows != 1 || payload.Endpoint != ToolKeyStockState {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.FetchedAt == "" {
		t.Fatal("fetched_at missing")
	}
}

func TestRunToolEmptySetHasNonNilSlices(t *testing.T) {
	m := newStubMCP(&market.RecordSet{}, nil)

	_, payload, err := m.runTool(context.Background(), ToolKeyCongressTrades, CongressTradesArgs{}, func(ctx context.Context) (*market.RecordSet, error) {
		return m.marketService.CongressTrades(ctx, market.CongressTradesRequest{})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Records == nil || payload.Columns == nil {
		t.Fatal("empty payload must keep non-nil slices")
	}
}

func TestRunToolReportsAPIErrorsAsToolErrors(t *testing.T) {
	apiErr := apierrors.New(apierrors.KindRateLimit, "flow_alerts", "rate limit exceeded")
	m := newStubMCP(nil, apiErr)

	result, payload, err := m.runTool(context.Background(), ToolKeyFlowAlerts, FlowAlertsArgs{}, func(ctx context.Context) (*market.RecordSet, error) {
		return m.marketService.FlowAlerts(ctx, market.FlowAlertsRequest{})
	})
	if err != nil {
		t.Fatalf("tool failures must not become protocol errors: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatalf("result = %+v, want IsError", result)
	}
	text := result.Content[0].(*sdk.TextContent).Text
	if !strings.Contains(text, "RATE_LIMIT") {
		t.Fatalf("error text %q does not carry the kind", text)
	}
	if payload.Rows != 0 || payload.Endpoint != "flow_alerts" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestRegisterToolsExposesAllTools(t *testing.T) {
	m := newStubMCP(&market.RecordSet{}, nil)
	server := sdk.NewServer(&sdk.Implementation{Name: "test", Version: "0.0.1"}, nil)

	// registration must not panic or collide on duplicate names
	m.RegisterTools(server)
}
