package uwapi

import (
	"net/url"
	"reflect"
	"testing"
)

func boolPtr(v bool) *bool        { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func TestQueryBuilderOmitsUnsetAndDefaults(t *testing.T) {
	tests := []struct {
		name  string
		build func() *QueryBuilder
		want  url.Values
	}{
		{
			name: "nil values add nothing",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					Bool("is_call", nil, false).
					Int("limit", nil, 200).
					Float("min_diff", nil, 0.0).
					String("ticker", nil, "")
			},
			want: url.Values{},
		},
		{
			name: "explicit defaults add nothing",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					Bool("is_call", boolPtr(false), false).
					Int("limit", intPtr(200), 200).
					Float("min_diff", floatPtr(0.0), 0.0).
					String("order_direction", stringPtr("desc"), "desc")
			},
			want: url.Values{},
		},
		{
			name: "non-default values are added",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					Bool("is_call", boolPtr(true), false).
					Int("limit", intPtr(50), 200).
					Float("min_diff", floatPtr(0.25), 0.0).
					String("ticker_symbol", stringPtr("AAPL"), "")
			},
			want: url.Values{
				"is_call":       {"true"},
				"limit":         {"50"},
				"min_diff":      {"0.25"},
				"ticker_symbol": {"AAPL"},
			},
		},
		{
			name: "bool always sends explicit false",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					BoolAlways("is_director", boolPtr(false)).
					BoolAlways("is_officer", nil)
			},
			want: url.Values{
				"is_director": {"false"},
			},
		},
		{
			name: "string always sends explicit empty",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					StringAlways("newer_than", stringPtr("")).
					StringAlways("older_than", nil)
			},
			want: url.Values{
				"newer_than": {""},
			},
		},
		{
			name: "list keys repeat without brackets",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					StringList("rule_name", []string{"RepeatedHits", "FloorTradeLargeCap"})
			},
			want: url.Values{
				"rule_name": {"RepeatedHits", "FloorTradeLargeCap"},
			},
		},
		{
			name: "array list keys get bracket suffix",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					ArrayList("transaction_codes", []string{"P", "S"})
			},
			want: url.Values{
				"transaction_codes[]": {"P", "S"},
			},
		},
		{
			name: "empty lists add nothing",
			build: func() *QueryBuilder {
				return NewQueryBuilder().
					StringList("issue_types", nil).
					ArrayList("transaction_codes", nil)
			},
			want: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.build().Values()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryBuilderFloatFormatting(t *testing.T) {
	got := NewQueryBuilder().Float("max_diff", floatPtr(1.5), 0.0).Encode()
	if got != "max_diff=1.5" {
		t.Fatalf("got %q, want max_diff=1.5", got)
	}
}
