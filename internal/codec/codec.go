// Package codec converts records between their semantic form (list-valued
// keywords and reference_urls) and their stored form (JSON text), and stamps
// write timestamps from an injected clock.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ListFields are the columns stored as JSON-encoded string lists.
var ListFields = []string{"keywords", "reference_urls"}

const (
	FieldCreatedTime = "created_time"
	FieldUpdatedTime = "updated_time"
)

// TimestampLayout is the stored form of created_time and updated_time.
// Fractional seconds are fixed at six digits so stored text sorts in time
// order within one offset.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

type Clock interface {
	Now() time.Time
}

type offsetClock struct {
	loc *time.Location
}

// NewClock returns a clock reporting wall time in the fixed zone UTC+offsetHours.
func NewClock(offsetHours int) Clock {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return offsetClock{loc: time.FixedZone(name, offsetHours*3600)}
}

func (c offsetClock) Now() time.Time { return time.Now().In(c.loc) }

// FixedClock always reports T. Tests advance it by assigning T.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

type Codec struct {
	Clock Clock
}

func New(clock Clock) *Codec {
	return &Codec{Clock: clock}
}

// Timestamp formats the clock's current time the way it is stored.
func (c *Codec) Timestamp() string {
	return c.Clock.Now().Format(TimestampLayout)
}

// EncodeForWrite returns a copy of fields ready to bind as SQL parameters.
// Lists become JSON text, already-encoded strings pass through, and
// updated_time is always refreshed; created_time is filled on insert only
// when the caller did not supply one.
func (c *Codec) EncodeForWrite(fields map[string]any, isUpdate bool) map[string]any {
	out := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	for _, name := range ListFields {
		v, ok := out[name]
		if !ok || v == nil {
			continue
		}
		if list, ok := toStringList(v); ok {
			out[name] = EncodeList(list)
		}
	}

	now := c.Timestamp()
	out[FieldUpdatedTime] = now
	if !isUpdate {
		if v, ok := out[FieldCreatedTime]; !ok || v == nil || v == "" {
			out[FieldCreatedTime] = now
		}
	}
	return out
}

// DecodeForRead converts a scanned row into its semantic form. Corrupt list
// text decodes to an empty list rather than failing the read.
func (c *Codec) DecodeForRead(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		switch typed := v.(type) {
		case []byte:
			v = string(typed)
		case time.Time:
			v = timeText(typed)
		}
		out[k] = v
	}
	for _, name := range ListFields {
		s, ok := out[name].(string)
		if !ok || s == "" {
			continue
		}
		out[name] = DecodeList(s)
	}
	return out
}

// EncodeList renders list as compact JSON without HTML escaping, so
// non-ASCII and '<', '>', '&' are stored verbatim.
func EncodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return "[]"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func DecodeList(s string) []string {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

// KeywordPattern is the LIKE pattern matching kw as a whole element of an
// encoded list. The pattern is meant for LIKE ... ESCAPE '\'.
func KeywordPattern(kw string) string {
	encoded := EncodeList([]string{kw})
	element := encoded[1 : len(encoded)-1]
	return "%" + EscapeLike(element) + "%"
}

// ContainsPattern is the LIKE pattern for a plain substring match.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// EscapeLike escapes LIKE wildcards in s for use with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// The store reads DATE and TIMESTAMP columns with TimestampLayout, so a
// time.Time only ever comes from text in that layout and formats back to it.
func timeText(t time.Time) string {
	return t.Format(TimestampLayout)
}

func toStringList(v any) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return items, true
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
