package uwapi

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/study-flamingo/unusualwhales-mcp/internal/domain/market"
	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

// decodeData mimics the client decode path: UseNumber keeps numeric
// fields as json.Number.
func decodeData(t *testing.T, raw string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return payload["data"]
}

func TestNormalizeEmptyPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing data key", `{}`},
		{"null data", `{"data": null}`},
		{"empty list", `{"data": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Normalize(CongressTrades, decodeData(t, tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if set.Len() != 0 {
				t.Fatalf("got %d rows, want 0", set.Len())
			}
			if set.Records == nil || set.Columns == nil {
				t.Fatal("empty set must have non-nil columns and records")
			}
		})
	}
}

func TestNormalizeSingleObjectBecomesOneRow(t *testing.T) {
	data := decodeData(t, `{"data": {"ticker": "AAPL", "marketcap": "2875640000000", "avg30_volume": 54000000}}`)
	set, err := Normalize(TickerInfo, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("got %d rows, want 1", set.Len())
	}
	mc, ok := set.Records[0]["marketcap"].(decimal.Decimal)
	if !ok {
		t.Fatalf("marketcap is %T, want decimal.Decimal", set.Records[0]["marketcap"])
	}
	if mc.String() != "2875640000000" {
		t.Fatalf("marketcap = %s", mc.String())
	}
	if vol, ok := set.Records[0]["avg30_volume"].(int64); !ok || vol != 54000000 {
		t.Fatalf("avg30_volume = %v (%T)", set.Records[0]["avg30_volume"], set.Records[0]["avg30_volume"])
	}
}

func TestNormalizeDecimalKeepsDigits(t *testing.T) {
	data := decodeData(t, `{"data": [{"price": 123.45, "strike": "180.50"}]}`)
	set, err := Normalize(FlowAlerts, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	price := set.Records[0]["price"].(decimal.Decimal)
	if price.String() != "123.45" {
		t.Fatalf("price = %s, want 123.45", price.String())
	}
	strike := set.Records[0]["strike"].(decimal.Decimal)
	if !strike.Equal(decimal.RequireFromString("180.5")) {
		t.Fatalf("strike = %s", strike.String())
	}
}

func TestNormalizeEventTimeConvertsToEastern(t *testing.T) {
	data := decodeData(t, `{"data": [{"created_at": "2024-01-15T20:30:00Z", "headline": "x"}]}`)
	set, err := Normalize(NewsHeadlines, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created, ok := set.Records[0]["created_at"].(time.Time)
	if !ok {
		t.Fatalf("created_at is %T, want time.Time", set.Records[0]["created_at"])
	}
	if created.Location().String() != "America/New_York" {
		t.Fatalf("zone = %s", created.Location())
	}
	// 20:30 UTC in January is 15:30 EST
	if created.Hour() != 15 || created.Minute() != 30 {
		t.Fatalf("local time = %s", created.Format("15:04"))
	}
	if !created.Equal(time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)) {
		t.Fatal("conversion changed the instant")
	}
}

func TestNormalizeDateStaysCalendarDay(t *testing.T) {
	data := decodeData(t, `{"data": [{"transaction_date": "2024-03-08", "filed_at_date": "2024-03-10"}]}`)
	set, err := Normalize(CongressTrades, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := set.Records[0]["transaction_date"].(market.Date)
	if !ok {
		t.Fatalf("transaction_date is %T", set.Records[0]["transaction_date"])
	}
	if d.String() != "2024-03-08" {
		t.Fatalf("transaction_date = %s", d.String())
	}
}

func TestNormalizeTolerantNullsMalformedFields(t *testing.T) {
	data := decodeData(t, `{"data": [{"units": "not-a-number", "ticker": "MSFT"}]}`)
	set, err := Normalize(InstitutionHoldings, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Records[0]["units"] != nil {
		t.Fatalf("units = %v, want nil", set.Records[0]["units"])
	}
	if set.Records[0]["ticker"] != "MSFT" {
		t.Fatal("untouched field changed")
	}
}

func TestNormalizeStrictFailsOnMalformedField(t *testing.T) {
	data := decodeData(t, `{"data": [{"total_premium": "garbage"}]}`)
	_, err := Normalize(FlowAlerts, data)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierrors.IsKind(err, apierrors.KindResponse) {
		t.Fatalf("kind = %v", apierrors.KindOf(err))
	}
	if !strings.Contains(err.Error(), "total_premium") {
		t.Fatalf("error does not name the field: %v", err)
	}
	if !strings.Contains(err.Error(), "flow_alerts") {
		t.Fatalf("error does not name the endpoint: %v", err)
	}
}

func TestNormalizeAbsentFieldsBecomeExplicitNil(t *testing.T) {
	data := decodeData(t, `{"data": [{"ticker": "AAPL", "marketcap": "100"}, {"ticker": "MSFT"}]}`)
	set, err := Normalize(TickerInfo, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a key one row has must exist in every row, as an explicit nil
	val, ok := set.Records[1]["marketcap"]
	if !ok {
		t.Fatal("second row omits marketcap entirely")
	}
	if val != nil {
		t.Fatalf("marketcap = %v, want nil", val)
	}

	// schema columns the payload never sent still materialize
	for i, rec := range set.Records {
		for _, field := range []string{"next_earnings_date", "avg30_volume"} {
			v, ok := rec[field]
			if !ok {
				t.Fatalf("row %d omits %s", i, field)
			}
			if v != nil {
				t.Fatalf("row %d: %s = %v, want nil", i, field, v)
			}
		}
	}

	cols := make(map[string]bool, len(set.Columns))
	for _, c := range set.Columns {
		cols[c] = true
	}
	for _, want := range []string{"ticker", "marketcap", "next_earnings_date", "avg30_volume"} {
		if !cols[want] {
			t.Fatalf("columns %v missing %s", set.Columns, want)
		}
	}
}

func TestNormalizeRejectsScalarPayload(t *testing.T) {
	for _, raw := range []string{`{"data": 42}`, `{"data": "oops"}`, `{"data": [1, 2]}`} {
		_, err := Normalize(StockState, decodeData(t, raw))
		if err == nil {
			t.Fatalf("payload %s: expected error", raw)
		}
		if !apierrors.IsKind(err, apierrors.KindResponse) {
			t.Fatalf("payload %s: kind = %v", raw, apierrors.KindOf(err))
		}
	}
}

func TestNormalizeColumnsUnionAcrossRows(t *testing.T) {
	data := decodeData(t, `{"data": [{"a": 1, "b": 2}, {"b": 3, "c": 4}]}`)
	set, err := Normalize(CongressTrades, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// union of payload keys plus the endpoint's schema columns
	want := []string{"a", "b", "c", "filed_at_date", "transaction_date"}
	if len(set.Columns) != len(want) {
		t.Fatalf("columns = %v", set.Columns)
	}
	got := make(map[string]bool, len(set.Columns))
	for _, c := range set.Columns {
		got[c] = true
	}
	for _, c := range want {
		if !got[c] {
			t.Fatalf("columns %v missing %s", set.Columns, c)
		}
	}
	// keys of the first row come before keys introduced later
	if set.Columns[0] != "a" || set.Columns[1] != "b" || set.Columns[2] != "c" {
		t.Fatalf("columns = %v, want payload keys first in first-seen order", set.Columns)
	}

	// every row carries every column
	for i, rec := range set.Records {
		for _, c := range want {
			if _, ok := rec[c]; !ok {
				t.Fatalf("row %d omits column %s", i, c)
			}
		}
	}
	if set.Records[0]["c"] != nil || set.Records[1]["a"] != nil {
		t.Fatal("filled columns must be explicit nils")
	}
}
