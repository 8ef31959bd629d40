package market

import "context"

// MarketClient defines the Unusual Whales operations required by the domain layer
type MarketClient interface {
	FlowAlerts(ctx context.Context, req FlowAlertsRequest) (*RecordSet, error)
	TickerInfo(ctx context.Context, req TickerInfoRequest) (*RecordSet, error)
	StockState(ctx context.Context, req StockStateRequest) (*RecordSet, error)
	InstitutionHoldings(ctx context.Context, req InstitutionHoldingsRequest) (*RecordSet, error)
	InsiderTransactions(ctx context.Context, req InsiderTransactionsRequest) (*RecordSet, error)
	CongressTrades(ctx context.Context, req CongressTradesRequest) (*RecordSet, error)
	NewsHeadlines(ctx context.Context, req NewsHeadlinesRequest) (*RecordSet, error)
}

// MarketService exposes market data operations to the MCP layer while remaining transport-agnostic.
type MarketService struct {
	client MarketClient
}

// NewMarketService creates a new market data service.
func NewMarketService(client MarketClient) *MarketService {
	return &MarketService{
		client: client,
	}
}

// FlowAlerts fetches filtered option flow alerts
func (s *MarketService) FlowAlerts(ctx context.Context, req FlowAlertsRequest) (*RecordSet, error) {
	return s.client.FlowAlerts(ctx, req)
}

// TickerInfo fetches descriptive information for a single ticker
func (s *MarketService) TickerInfo(ctx context.Context, req TickerInfoRequest) (*RecordSet, error) {
	return s.client.TickerInfo(ctx, req)
}

// StockState fetches the current trading state for a single ticker
func (s *MarketService) StockState(ctx context.Context, req StockStateRequest) (*RecordSet, error) {
	return s.client.StockState(ctx, req)
}

// InstitutionHoldings fetches reported holdings for an institution
func (s *MarketService) InstitutionHoldings(ctx context.Context, req InstitutionHoldingsRequest) (*RecordSet, error) {
	return s.client.InstitutionHoldings(ctx, req)
}

// InsiderTransactions fetches aggregated insider transactions
func (s *MarketService) InsiderTransactions(ctx context.Context, req InsiderTransactionsRequest) (*RecordSet, error) {
	return s.client.InsiderTransactions(ctx, req)
}

// CongressTrades fetches recent congressional trade reports
func (s *MarketService) CongressTrades(ctx context.Context, req CongressTradesRequest) (*RecordSet, error) {
	return s.client.CongressTrades(ctx, req)
}

// NewsHeadlines fetches recent financial news headlines
func (s *MarketService) NewsHeadlines(ctx context.Context, req NewsHeadlinesRequest) (*RecordSet, error) {
	return s.client.NewsHeadlines(ctx, req)
}
