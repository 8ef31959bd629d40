package uwapi

import (
	"net/url"
	"strconv"
)

// QueryBuilder assembles the query string for an Unusual Whales request.
// Parameters are emitted only when the caller set them to a non-default
// value, so the upstream API sees the same request a bare call would send.
type QueryBuilder struct {
	values url.Values
}

// NewQueryBuilder returns an empty builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{values: url.Values{}}
}

// Bool adds name when v is set and differs from def.
func (b *QueryBuilder) Bool(name string, v *bool, def bool) *QueryBuilder {
	if v == nil || *v == def {
		return b
	}
	b.values.Set(name, strconv.FormatBool(*v))
	return b
}

// BoolAlways adds name whenever v is set, for parameters with no
// upstream default where an explicit false is meaningful.
func (b *QueryBuilder) BoolAlways(name string, v *bool) *QueryBuilder {
	if v == nil {
		return b
	}
	b.values.Set(name, strconv.FormatBool(*v))
	return b
}

// Int adds name when v is set and differs from def.
func (b *QueryBuilder) Int(name string, v *int, def int) *QueryBuilder {
	if v == nil || *v == def {
		return b
	}
	b.values.Set(name, strconv.Itoa(*v))
	return b
}

// Float adds name when v is set and differs from def. The value is
// rendered with the shortest representation that round-trips.
func (b *QueryBuilder) Float(name string, v *float64, def float64) *QueryBuilder {
	if v == nil || *v == def {
		return b
	}
	b.values.Set(name, strconv.FormatFloat(*v, 'f', -1, 64))
	return b
}

// String adds name when v is set and differs from def.
func (b *QueryBuilder) String(name string, v *string, def string) *QueryBuilder {
	if v == nil || *v == def {
		return b
	}
	b.values.Set(name, *v)
	return b
}

// StringAlways adds name whenever v is set, for parameters with no
// upstream default where an explicit empty string is still sent.
func (b *QueryBuilder) StringAlways(name string, v *string) *QueryBuilder {
	if v == nil {
		return b
	}
	b.values.Set(name, *v)
	return b
}

// StringList adds one name entry per element. An empty slice adds nothing.
func (b *QueryBuilder) StringList(name string, vs []string) *QueryBuilder {
	for _, v := range vs {
		b.values.Add(name, v)
	}
	return b
}

// ArrayList adds one entry per element under name with a "[]" suffix,
// the bracket convention some endpoints require for list parameters.
func (b *QueryBuilder) ArrayList(name string, vs []string) *QueryBuilder {
	for _, v := range vs {
		b.values.Add(name+"[]", v)
	}
	return b
}

// Values returns the accumulated query parameters.
func (b *QueryBuilder) Values() url.Values {
	return b.values
}

// Encode returns the encoded query string.
func (b *QueryBuilder) Encode() string {
	return b.values.Encode()
}
