package uwapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/study-flamingo/unusualwhales-mcp/internal/domain/market"
	"github.com/study-flamingo/unusualwhales-mcp/internal/infrastructure/metrics"
	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

const defaultBaseURL = "https://api.unusualwhales.com"

// ClientConfig captures the knobs exposed to operators for the Unusual
// Whales client.
type ClientConfig struct {
	BaseURL string
	Token   string

	// HTTP Client Settings
	HTTPTimeout     time.Duration
	MaxConnsPerHost int
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// Client implements market.MarketClient against the Unusual Whales REST API.
type Client struct {
	cfg  ClientConfig
	http *resty.Client
}

var _ market.MarketClient = (*Client)(nil)

// NewClient wires the HTTP client for the Unusual Whales API. The token
// is sent as-is in the Authorization header; an empty token is still
// sent and left for the API to reject.
func NewClient(cfg ClientConfig) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	httpTimeout := 30 * time.Second
	if cfg.HTTPTimeout > 0 {
		httpTimeout = cfg.HTTPTimeout
	}

	// Configure HTTP transport with connection pooling
	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 100
	}
	maxConnsPerHost := cfg.MaxConnsPerHost
	if maxConnsPerHost == 0 {
		maxConnsPerHost = 50
	}
	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = 90 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		DisableKeepAlives:   false,
		ForceAttemptHTTP2:   true,
	}

	httpClient := resty.New().
		SetHeader("User-Agent", "UnusualWhales-MCP/1.0").
		SetHeader("Accept", "application/json, text/plain").
		SetHeader("Authorization", cfg.Token).
		SetTimeout(httpTimeout).
		SetRetryCount(0).
		SetTransport(transport)

	return &Client{cfg: cfg, http: httpClient}
}

// fetch performs one GET against an endpoint, classifies failures and
// normalizes the "data" payload. Path arguments are escaped before they
// are substituted into the endpoint path.
func (c *Client) fetch(ctx context.Context, ep Endpoint, pathArgs []string, query url.Values) (*market.RecordSet, error) {
	escaped := make([]any, len(pathArgs))
	for i, arg := range pathArgs {
		escaped[i] = url.PathEscape(arg)
	}
	target := c.cfg.BaseURL + fmt.Sprintf(ep.Path, escaped...)

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(target)
	metrics.RecordExternalAPILatency(ep.Name, time.Since(start).Seconds())

	if err != nil {
		apiErr := classifyTransport(ep, target, err)
		apierrors.LogError(log.Logger, apiErr)
		return nil, apiErr
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusNotFound && ep.EmptyOn404 {
			log.Warn().
				Str("endpoint", ep.Name).
				Str("url", target).
				Msg("resource not found, returning empty result")
			return &market.RecordSet{Columns: []string{}, Records: []market.Record{}}, nil
		}
		apiErr := classifyStatus(ep, resp.StatusCode(), resp.String())
		apierrors.LogError(log.Logger, apiErr)
		return nil, apiErr
	}

	// decode with UseNumber so decimal fields keep their exact digits
	var payload map[string]any
	dec := json.NewDecoder(strings.NewReader(resp.String()))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		apiErr := apierrors.Wrap(apierrors.KindResponse, ep.Name, "response is not a JSON object", err)
		metrics.RecordAPIError(ep.Name, string(apierrors.KindResponse))
		apierrors.LogError(log.Logger, apiErr)
		return nil, apiErr
	}

	set, err := Normalize(ep, payload["data"])
	if err != nil {
		metrics.RecordAPIError(ep.Name, string(apierrors.KindOf(err)))
		return nil, err
	}

	log.Debug().
		Str("endpoint", ep.Name).
		Int("rows", set.Len()).
		Dur("duration", time.Since(start)).
		Msg("Unusual Whales request completed")
	return set, nil
}

// FlowAlerts fetches filtered option flow alerts.
func (c *Client) FlowAlerts(ctx context.Context, req market.FlowAlertsRequest) (*market.RecordSet, error) {
	q := NewQueryBuilder().
		Bool("all_opening", req.AllOpening, false).
		Bool("is_ask_side", req.IsAskSide, false).
		Bool("is_bid_side", req.IsBidSide, false).
		Bool("is_call", req.IsCall, false).
		Bool("is_floor", req.IsFloor, false).
		Bool("is_otm", req.IsOtm, false).
		Bool("is_put", req.IsPut, false).
		Bool("is_sweep", req.IsSweep, false).
		StringList("issue_types", req.IssueTypes).
		Int("limit", req.Limit, 200).
		Float("max_diff", req.MaxDiff, 0.0).
		Int("max_dte", req.MaxDte, 0).
		Int("max_open_interest", req.MaxOpenInterest, 0).
		Int("max_premium", req.MaxPremium, 0).
		Int("max_size", req.MaxSize, 0).
		Int("max_volume", req.MaxVolume, 0).
		Float("max_volume_oi_ratio", req.MaxVolumeOiRatio, 0.0).
		Float("min_diff", req.MinDiff, 0.0).
		Int("min_dte", req.MinDte, 0).
		Int("min_open_interest", req.MinOpenInterest, 0).
		Int("min_premium", req.MinPremium, 0).
		Int("min_size", req.MinSize, 0).
		Int("min_volume", req.MinVolume, 0).
		Float("min_volume_oi_ratio", req.MinVolumeOiRatio, 0.0).
		StringAlways("newer_than", req.NewerThan).
		StringAlways("older_than", req.OlderThan).
		StringList("rule_name", req.RuleNames).
		StringAlways("ticker_symbol", req.TickerSymbol)
	return c.fetch(ctx, FlowAlerts, nil, q.Values())
}

// TickerInfo fetches descriptive information for a single ticker.
func (c *Client) TickerInfo(ctx context.Context, req market.TickerInfoRequest) (*market.RecordSet, error) {
	return c.fetch(ctx, TickerInfo, []string{req.Ticker}, nil)
}

// StockState fetches the current trading state for a single ticker.
func (c *Client) StockState(ctx context.Context, req market.StockStateRequest) (*market.RecordSet, error) {
	return c.fetch(ctx, StockState, []string{req.Ticker}, nil)
}

// InstitutionHoldings fetches reported holdings for an institution.
func (c *Client) InstitutionHoldings(ctx context.Context, req market.InstitutionHoldingsRequest) (*market.RecordSet, error) {
	q := NewQueryBuilder().
		StringAlways("date", req.Date).
		StringAlways("start_date", req.StartDate).
		StringAlways("end_date", req.EndDate).
		StringList("security_types", req.SecurityTypes).
		Int("limit", req.Limit, 500).
		Int("page", req.Page, 0).
		StringAlways("order", req.Order).
		String("order_direction", req.OrderDirection, "desc")
	return c.fetch(ctx, InstitutionHoldings, []string{req.Name}, q.Values())
}

// InsiderTransactions fetches aggregated insider transactions.
func (c *Client) InsiderTransactions(ctx context.Context, req market.InsiderTransactionsRequest) (*market.RecordSet, error) {
	q := NewQueryBuilder().
		StringAlways("ticker_symbol", req.TickerSymbol).
		StringAlways("min_value", req.MinValue).
		StringAlways("max_value", req.MaxValue).
		StringAlways("min_price", req.MinPrice).
		StringAlways("max_price", req.MaxPrice).
		StringAlways("owner_name", req.OwnerName).
		StringAlways("sectors", req.Sectors).
		StringAlways("industries", req.Industries).
		StringAlways("min_marketcap", req.MinMarketcap).
		StringAlways("max_marketcap", req.MaxMarketcap).
		StringAlways("market_cap_size", req.MarketCapSize).
		StringAlways("min_earnings_dte", req.MinEarningsDte).
		StringAlways("max_earnings_dte", req.MaxEarningsDte).
		StringAlways("min_amount", req.MinAmount).
		StringAlways("max_amount", req.MaxAmount).
		BoolAlways("is_director", req.IsDirector).
		BoolAlways("is_officer", req.IsOfficer).
		BoolAlways("is_s_p_500", req.IsSP500).
		BoolAlways("is_ten_percent_owner", req.IsTenPercentOwner).
		BoolAlways("common_stock_only", req.CommonStockOnly).
		ArrayList("transaction_codes", req.TransactionCodes).
		StringAlways("security_ad_codes", req.SecurityAdCodes).
		Int("limit", req.Limit, 500).
		Int("page", req.Page, 0)
	return c.fetch(ctx, InsiderTransactions, nil, q.Values())
}

// CongressTrades fetches recent congressional trade reports.
func (c *Client) CongressTrades(ctx context.Context, req market.CongressTradesRequest) (*market.RecordSet, error) {
	q := NewQueryBuilder().
		Int("limit", req.Limit, 100).
		StringAlways("date", req.Date).
		StringAlways("ticker", req.Ticker)
	return c.fetch(ctx, CongressTrades, nil, q.Values())
}

// NewsHeadlines fetches recent financial news headlines.
func (c *Client) NewsHeadlines(ctx context.Context, req market.NewsHeadlinesRequest) (*market.RecordSet, error) {
	q := NewQueryBuilder().
		StringAlways("sources", req.Sources).
		StringAlways("search_term", req.SearchTerm).
		Bool("major_only", req.MajorOnly, false).
		Int("limit", req.Limit, 50).
		Int("page", req.Page, 0)
	return c.fetch(ctx, NewsHeadlines, nil, q.Values())
}
