package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

// ValidateFields checks a write payload against the column metadata: every
// key must be a known column, enum columns must hold an allowed value, and
// bounded integer columns must be in range. Keys are checked in sorted order
// so the reported field is deterministic.
func (t Table) ValidateFields(fields map[string]any) error {
	const op = "catalog.validate"

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := fields[key]
		col, ok := t.Column(key)
		if !ok {
			return profileerr.Validation(op, t.Name, key, value, "unknown column")
		}
		if value == nil {
			if col.NotNull {
				return profileerr.Validation(op, t.Name, key, value, "column is required")
			}
			continue
		}
		if len(col.Enum) > 0 {
			s, ok := value.(string)
			if !ok || !slices.Contains(col.Enum, s) {
				return profileerr.Validation(op, t.Name, key, value, fmt.Sprintf("must be one of %v", col.Enum))
			}
		}
		if col.Min != nil || col.Max != nil {
			n, ok := AsInt(value)
			if !ok {
				return profileerr.Validation(op, t.Name, key, value, "must be an integer")
			}
			if (col.Min != nil && n < int64(*col.Min)) || (col.Max != nil && n > int64(*col.Max)) {
				return profileerr.Validation(op, t.Name, key, value, fmt.Sprintf("must be between %d and %d", *col.Min, *col.Max))
			}
		}
		if col.JSONList && !isListValue(value) {
			return profileerr.Validation(op, t.Name, key, value, "must be a list of strings")
		}
	}
	return nil
}

// CheckRequired reports the first NOT NULL column, in declaration order,
// that fields does not supply. Insert calls it; updates leave absent columns
// untouched and skip it.
func (t Table) CheckRequired(fields map[string]any) error {
	for _, col := range t.Columns {
		if !col.NotNull {
			continue
		}
		if _, ok := fields[col.Name]; !ok {
			return profileerr.Validation("catalog.required", t.Name, col.Name, nil, "column is required")
		}
	}
	return nil
}

// AsInt reports whether v is a whole number and returns it. JSON decoding
// hands numbers over as float64, so whole floats are accepted.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func isListValue(v any) bool {
	switch items := v.(type) {
	case string, []string:
		return true
	case []any:
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
