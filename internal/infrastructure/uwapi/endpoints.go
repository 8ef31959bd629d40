package uwapi

// FieldKind selects the coercion applied to a schema field during
// normalization.
type FieldKind int

const (
	// KindInt coerces to int64.
	KindInt FieldKind = iota
	// KindDecimal coerces to an exact decimal, preserving the digits the
	// API sent.
	KindDecimal
	// KindDate coerces to a calendar day with no zone conversion.
	KindDate
	// KindEventTime coerces to a timestamp and converts it to the
	// reporting zone.
	KindEventTime
)

// FieldSpec names one response field and the kind it coerces to.
type FieldSpec struct {
	Name string
	Kind FieldKind
}

// Endpoint describes one Unusual Whales REST endpoint: its request path,
// error handling quirks and the per-field coercion schema.
type Endpoint struct {
	// Name identifies the endpoint in logs, metrics and errors.
	Name string
	// Path is the request path, with fmt verbs for path parameters.
	Path string
	// EmptyOn404 turns an upstream 404 into an empty result instead of
	// an error.
	EmptyOn404 bool
	// Strict makes a malformed schema field fail the whole response.
	// Non-strict endpoints null the field and keep the row.
	Strict bool
	// Schema lists the fields that get coerced. Schema fields absent
	// from a record materialize as explicit nils.
	Schema []FieldSpec
}

var (
	// FlowAlerts is the option flow alerts feed. The only endpoint with
	// strict coercion.
	FlowAlerts = Endpoint{
		Name:   "flow_alerts",
		Path:   "/api/option-trades/flow-alerts",
		Strict: true,
		Schema: []FieldSpec{
			{Name: "created_at", Kind: KindEventTime},
			{Name: "expiry", Kind: KindDate},
			{Name: "next_earnings_date", Kind: KindDate},
			{Name: "total_ask_side_prem", Kind: KindInt},
			{Name: "total_bid_side_prem", Kind: KindInt},
			{Name: "total_premium", Kind: KindInt},
			{Name: "ask", Kind: KindDecimal},
			{Name: "bid", Kind: KindDecimal},
			{Name: "iv_end", Kind: KindDecimal},
			{Name: "iv_start", Kind: KindDecimal},
			{Name: "marketcap", Kind: KindDecimal},
			{Name: "price", Kind: KindDecimal},
			{Name: "strike", Kind: KindDecimal},
			{Name: "underlying_price", Kind: KindDecimal},
			{Name: "volume_oi_ratio", Kind: KindDecimal},
		},
	}

	// TickerInfo is per-ticker descriptive data. A 404 here means an
	// unknown ticker and resolves to an empty set.
	TickerInfo = Endpoint{
		Name:       "ticker_info",
		Path:       "/api/stock/%s/info",
		EmptyOn404: true,
		Schema: []FieldSpec{
			{Name: "next_earnings_date", Kind: KindDate},
			{Name: "avg30_volume", Kind: KindInt},
			{Name: "marketcap", Kind: KindDecimal},
		},
	}

	// StockState is the latest OHLC state for a ticker.
	StockState = Endpoint{
		Name: "stock_state",
		Path: "/api/stock/%s/stock-state",
		Schema: []FieldSpec{
			{Name: "close", Kind: KindDecimal},
			{Name: "high", Kind: KindDecimal},
			{Name: "low", Kind: KindDecimal},
			{Name: "open", Kind: KindDecimal},
			{Name: "tape_time", Kind: KindEventTime},
			{Name: "total_volume", Kind: KindInt},
			{Name: "volume", Kind: KindInt},
		},
	}

	// InstitutionHoldings is one institution's reported positions.
	InstitutionHoldings = Endpoint{
		Name: "institution_holdings",
		Path: "/api/institution/%s/holdings",
		Schema: []FieldSpec{
			{Name: "avg_price", Kind: KindDecimal},
			{Name: "close", Kind: KindDecimal},
			{Name: "date", Kind: KindDate},
			{Name: "first_buy", Kind: KindDate},
			{Name: "price_first_buy", Kind: KindDecimal},
			{Name: "shares_outstanding", Kind: KindDecimal},
			{Name: "units", Kind: KindInt},
			{Name: "units_change", Kind: KindInt},
			{Name: "value", Kind: KindInt},
		},
	}

	// InsiderTransactions is the aggregated insider transactions feed.
	InsiderTransactions = Endpoint{
		Name: "insider_transactions",
		Path: "/api/insider/transactions",
		Schema: []FieldSpec{
			{Name: "amount", Kind: KindInt},
			{Name: "date_excercisable", Kind: KindDate},
			{Name: "expiration_date", Kind: KindDate},
			{Name: "filing_date", Kind: KindDate},
			{Name: "marketcap", Kind: KindDecimal},
			{Name: "next_earnings_date", Kind: KindDate},
			{Name: "price", Kind: KindDecimal},
			{Name: "price_excercisable", Kind: KindDecimal},
			{Name: "shares_owned_after", Kind: KindInt},
			{Name: "shares_owned_before", Kind: KindInt},
			{Name: "stock_price", Kind: KindDecimal},
			{Name: "transaction_date", Kind: KindDate},
			{Name: "transactions", Kind: KindInt},
		},
	}

	// CongressTrades is the recent congressional trade reports feed.
	CongressTrades = Endpoint{
		Name: "congress_trades",
		Path: "/api/congress/recent-trades",
		Schema: []FieldSpec{
			{Name: "filed_at_date", Kind: KindDate},
			{Name: "transaction_date", Kind: KindDate},
		},
	}

	// NewsHeadlines is the financial news headlines feed.
	NewsHeadlines = Endpoint{
		Name: "news_headlines",
		Path: "/api/news/headlines",
		Schema: []FieldSpec{
			{Name: "created_at", Kind: KindEventTime},
		},
	}
)
