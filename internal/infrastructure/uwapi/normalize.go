package uwapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"

	"github.com/study-flamingo/unusualwhales-mcp/internal/domain/market"
	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

// reportingZone is the zone event timestamps are converted to before
// rows are handed to callers.
var reportingZone = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("uwapi: load location %s: %v", name, err))
	}
	return loc
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Normalize shapes the decoded "data" payload of an endpoint into a
// RecordSet and applies the endpoint's field coercions. A nil payload
// and an empty list both normalize to an empty set; a single object
// becomes a one-row set. Any other payload shape is a RESPONSE error.
// Once materialized, every record carries every column: the union of
// keys across rows plus all schema columns, with explicit nils where a
// row has no value.
func Normalize(ep Endpoint, data any) (*market.RecordSet, error) {
	var raw []map[string]any

	switch v := data.(type) {
	case nil:
		return &market.RecordSet{Columns: []string{}, Records: []market.Record{}}, nil
	case []any:
		raw = make([]map[string]any, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, apierrors.New(apierrors.KindResponse, ep.Name,
					fmt.Sprintf("row %d is not an object", i))
			}
			raw = append(raw, obj)
		}
	case map[string]any:
		raw = []map[string]any{v}
	default:
		return nil, apierrors.New(apierrors.KindResponse, ep.Name,
			fmt.Sprintf("unexpected data payload of type %T", data))
	}

	records := make([]market.Record, 0, len(raw))
	for _, obj := range raw {
		rec := make(market.Record, len(obj)+len(ep.Schema))
		for k, v := range obj {
			rec[k] = v
		}
		for _, field := range ep.Schema {
			val, ok := rec[field.Name]
			if !ok || val == nil {
				rec[field.Name] = nil
				continue
			}
			coerced, err := coerceField(field.Kind, val)
			if err != nil {
				if ep.Strict {
					return nil, apierrors.Wrap(apierrors.KindResponse, ep.Name,
						fmt.Sprintf("field %s: malformed value %v", field.Name, val), err)
				}
				rec[field.Name] = nil
				continue
			}
			rec[field.Name] = coerced
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return &market.RecordSet{Columns: []string{}, Records: records}, nil
	}

	// payload keys first, then schema columns the payload never sent,
	// then nil-fill so every row carries every column
	columns := collectColumns(raw)
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		seen[c] = struct{}{}
	}
	for _, field := range ep.Schema {
		if _, ok := seen[field.Name]; !ok {
			seen[field.Name] = struct{}{}
			columns = append(columns, field.Name)
		}
	}
	for _, rec := range records {
		for _, c := range columns {
			if _, ok := rec[c]; !ok {
				rec[c] = nil
			}
		}
	}

	return &market.RecordSet{Columns: columns, Records: records}, nil
}

// collectColumns unions the keys of all rows. Keys introduced by an
// earlier row sort before keys first seen in a later one; within a row
// the keys are lexical, since decoded maps carry no key order.
func collectColumns(rows []map[string]any) []string {
	columns := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		fresh := make([]string, 0, len(row))
		for k := range row {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			fresh = append(fresh, k)
		}
		sort.Strings(fresh)
		columns = append(columns, fresh...)
	}
	return columns
}

// coerceField converts one raw JSON value according to the field kind.
// Numbers arrive as json.Number because responses are decoded with
// UseNumber, which keeps the digits the API actually sent.
func coerceField(kind FieldKind, val any) (any, error) {
	switch kind {
	case KindInt:
		return coerceInt(val)
	case KindDecimal:
		return coerceDecimal(val)
	case KindDate:
		return coerceDate(val)
	case KindEventTime:
		return coerceEventTime(val)
	default:
		return nil, fmt.Errorf("unknown field kind %d", kind)
	}
}

func coerceInt(val any) (int64, error) {
	switch v := val.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("not an integer: %s", v.String())
		}
		return int64(f), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", v)
		}
		return d.IntPart(), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to integer", val)
	}
}

func coerceDecimal(val any) (decimal.Decimal, error) {
	switch v := val.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("cannot coerce %T to decimal", val)
	}
}

func coerceDate(val any) (market.Date, error) {
	s, ok := val.(string)
	if !ok {
		return market.Date{}, fmt.Errorf("cannot coerce %T to date", val)
	}
	if d, err := market.ParseDate(s); err == nil {
		return d, nil
	}
	// some endpoints send dates with a time component attached
	t, err := parseTimestamp(s)
	if err != nil {
		return market.Date{}, fmt.Errorf("not a date: %q", s)
	}
	return market.NewDate(t), nil
}

func coerceEventTime(val any) (time.Time, error) {
	s, ok := val.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("cannot coerce %T to timestamp", val)
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a timestamp: %q", s)
	}
	return t.In(reportingZone), nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
