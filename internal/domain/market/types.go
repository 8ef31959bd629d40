package market

import (
	"fmt"
	"time"
)

// Date is a calendar day with no time zone. It marshals as "2006-01-02"
// so downstream consumers never see a spurious midnight timestamp.
type Date struct {
	time.Time
}

// NewDate builds a Date from a parsed time, discarding the clock portion.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar day in "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON renders the date as a quoted "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format("2006-01-02"))), nil
}

// UnmarshalJSON parses a quoted "2006-01-02" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("market: invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is a single normalized row from an Unusual Whales endpoint.
type Record map[string]any

// RecordSet is the uniform tabular result every endpoint resolves to.
// Columns preserves first-seen field order across the rows.
type RecordSet struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Empty reports whether the set holds no rows.
func (rs *RecordSet) Empty() bool {
	return rs == nil || len(rs.Records) == 0
}

// Len returns the row count.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

// FlowAlertsRequest filters the option flow alerts feed. Nil fields are
// treated as unset and omitted from the upstream query.
type FlowAlertsRequest struct {
	AllOpening       *bool
	IsAskSide        *bool
	IsBidSide        *bool
	IsCall           *bool
	IsFloor          *bool
	IsOtm            *bool
	IsPut            *bool
	IsSweep          *bool
	IssueTypes       []string
	Limit            *int
	MaxDiff          *float64
	MaxDte           *int
	MaxOpenInterest  *int
	MaxPremium       *int
	MaxSize          *int
	MaxVolume        *int
	MaxVolumeOiRatio *float64
	MinDiff          *float64
	MinDte           *int
	MinOpenInterest  *int
	MinPremium       *int
	MinSize          *int
	MinVolume        *int
	MinVolumeOiRatio *float64
	NewerThan        *string
	OlderThan        *string
	RuleNames        []string
	TickerSymbol     *string
}

// TickerInfoRequest identifies a single ticker.
type TickerInfoRequest struct {
	Ticker string
}

// StockStateRequest identifies a single ticker.
type StockStateRequest struct {
	Ticker string
}

// InstitutionHoldingsRequest filters one institution's reported holdings.
type InstitutionHoldingsRequest struct {
	Name           string
	Date           *string
	StartDate      *string
	EndDate        *string
	Limit          *int
	Order          *string
	OrderDirection *string
	Page           *int
	SecurityTypes  []string
}

// InsiderTransactionsRequest filters the insider transactions feed.
type InsiderTransactionsRequest struct {
	TickerSymbol      *string
	MinValue          *string
	MaxValue          *string
	MinPrice          *string
	MaxPrice          *string
	OwnerName         *string
	Sectors           *string
	Industries        *string
	MinMarketcap      *string
	MaxMarketcap      *string
	MarketCapSize     *string
	MinEarningsDte    *string
	MaxEarningsDte    *string
	MinAmount         *string
	MaxAmount         *string
	IsDirector        *bool
	IsOfficer         *bool
	IsSP500           *bool
	IsTenPercentOwner *bool
	CommonStockOnly   *bool
	TransactionCodes  []string
	SecurityAdCodes   *string
	Limit             *int
	Page              *int
}

// CongressTradesRequest filters recent congressional trade reports.
type CongressTradesRequest struct {
	Limit  *int
	Date   *string
	Ticker *string
}

// NewsHeadlinesRequest filters the financial news headlines feed.
type NewsHeadlinesRequest struct {
	Limit      *int
	MajorOnly  *bool
	Page       *int
	SearchTerm *string
	Sources    *string
}
