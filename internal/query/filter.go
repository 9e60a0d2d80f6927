// Package query turns a loosely-typed filter dictionary into a closed set of
// predicates and renders them as parameterized SQL.
//
// A filter key names its predicate by suffix: "priority_gte" is the predicate
// priority >= value. The exact keys "ids", "keywords_contain_any" and
// "keywords_contain_all" are recognised before suffix dispatch. Keys that do
// not resolve to a column of the target table are ignored unless the caller
// asks for strict parsing.
package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

type Kind int

const (
	KindIDs Kind = iota
	KindContains
	KindIn
	KindIs
	KindGTE
	KindLTE
	KindFrom
	KindTo
	KindKeywordsAny
	KindKeywordsAll
)

func (k Kind) String() string {
	switch k {
	case KindIDs:
		return "ids"
	case KindContains:
		return "contains"
	case KindIn:
		return "in"
	case KindIs:
		return "is"
	case KindGTE:
		return "gte"
	case KindLTE:
		return "lte"
	case KindFrom:
		return "from"
	case KindTo:
		return "to"
	case KindKeywordsAny:
		return "keywords_contain_any"
	case KindKeywordsAll:
		return "keywords_contain_all"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Exact filter keys.
const (
	KeyIDs         = "ids"
	KeyKeywordsAny = "keywords_contain_any"
	KeyKeywordsAll = "keywords_contain_all"
)

// Checked in this order; the first matching suffix wins.
var suffixes = []struct {
	suffix string
	kind   Kind
}{
	{"_contains", KindContains},
	{"_in", KindIn},
	{"_is", KindIs},
	{"_gte", KindGTE},
	{"_lte", KindLTE},
	{"_from", KindFrom},
	{"_to", KindTo},
}

// Predicate is one parsed filter entry. Scalar kinds carry Value; IDs, In and
// the keyword kinds carry Values.
type Predicate struct {
	Kind   Kind
	Key    string
	Field  string
	Value  any
	Values []any
}

type ParseOptions struct {
	// Strict rejects keys that match no suffix or no column instead of
	// ignoring them.
	Strict bool
}

// Parse validates filters against table and returns predicates in sorted key
// order. Nil values are skipped.
func Parse(table catalog.Table, filters map[string]any, opts ParseOptions) ([]Predicate, error) {
	const op = "query.parse"

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Predicate
	for _, key := range keys {
		value := filters[key]
		if value == nil {
			continue
		}

		kind, field, ok := classify(key)
		if !ok {
			if opts.Strict {
				return nil, profileerr.InvalidFilter(op, table.Name, key, "unrecognised filter key")
			}
			continue
		}
		if !table.HasColumn(field) {
			if opts.Strict {
				return nil, profileerr.InvalidFilter(op, table.Name, key, fmt.Sprintf("table has no column %q", field))
			}
			continue
		}

		p := Predicate{Kind: kind, Key: key, Field: field}
		switch kind {
		case KindIDs, KindIn:
			values, err := toScalarSlice(value)
			if err != nil {
				return nil, profileerr.InvalidFilter(op, table.Name, key, "expects a list of scalars: "+err.Error())
			}
			p.Values = values
		case KindKeywordsAny, KindKeywordsAll:
			values, err := toStringSlice(value)
			if err != nil {
				return nil, profileerr.InvalidFilter(op, table.Name, key, "expects a list of strings: "+err.Error())
			}
			if len(values) == 0 {
				continue
			}
			p.Values = values
		case KindContains:
			scalar, ok := toScalarValue(value)
			if !ok {
				return nil, profileerr.InvalidFilter(op, table.Name, key, fmt.Sprintf("expects a string, got %T", value))
			}
			p.Value = fmt.Sprint(scalar)
		default:
			scalar, ok := toScalarValue(value)
			if !ok {
				return nil, profileerr.InvalidFilter(op, table.Name, key, fmt.Sprintf("expects a scalar, got %T", value))
			}
			p.Value = scalar
		}
		out = append(out, p)
	}
	return out, nil
}

func classify(key string) (Kind, string, bool) {
	switch key {
	case KeyIDs:
		return KindIDs, "id", true
	case KeyKeywordsAny:
		return KindKeywordsAny, "keywords", true
	case KeyKeywordsAll:
		return KindKeywordsAll, "keywords", true
	}
	for _, s := range suffixes {
		if field, ok := strings.CutSuffix(key, s.suffix); ok && field != "" {
			return s.kind, field, true
		}
	}
	return 0, "", false
}

func toScalarSlice(value any) ([]any, error) {
	switch typed := value.(type) {
	case []any:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			scalar, ok := toScalarValue(v)
			if !ok {
				return nil, fmt.Errorf("expected scalar, got %T", v)
			}
			out = append(out, scalar)
		}
		return out, nil
	case []string:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			out = append(out, v)
		}
		return out, nil
	case []int:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			out = append(out, v)
		}
		return out, nil
	case []int64:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			out = append(out, v)
		}
		return out, nil
	case []float64:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
}

func toStringSlice(value any) ([]any, error) {
	switch typed := value.(type) {
	case []string:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			out = append(out, v)
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(typed))
		for _, v := range typed {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", v)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
}

func toScalarValue(value any) (any, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case bool:
		return typed, true
	case int:
		return typed, true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case float32:
		return float64(typed), true
	case float64:
		if typed == float64(int64(typed)) {
			return int64(typed), true
		}
		return typed, true
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i, true
		}
		if f, err := typed.Float64(); err == nil {
			return f, true
		}
		return nil, false
	default:
		return nil, false
	}
}
