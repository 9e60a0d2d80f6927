package codec

import (
	"reflect"
	"testing"
	"time"
)

func fixed(t *testing.T) (*Codec, *FixedClock) {
	t.Helper()
	clk := &FixedClock{T: time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("UTC+8", 8*3600))}
	return New(clk), clk
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c, _ := fixed(t)
	lists := [][]string{
		{"ai", "learning"},
		{"中文", "emoji 🚀", `quote "x"`, "a<b>&c", `back\slash`},
		{"single"},
	}
	for _, list := range lists {
		stored := c.EncodeForWrite(map[string]any{"keywords": list, "reference_urls": list}, false)
		if _, ok := stored["keywords"].(string); !ok {
			t.Fatalf("keywords not encoded: %T", stored["keywords"])
		}
		got := c.DecodeForRead(stored)
		if !reflect.DeepEqual(got["keywords"], list) {
			t.Errorf("keywords round trip = %v, want %v", got["keywords"], list)
		}
		if !reflect.DeepEqual(got["reference_urls"], list) {
			t.Errorf("reference_urls round trip = %v, want %v", got["reference_urls"], list)
		}
	}
}

func TestEncodeForWriteTimestamps(t *testing.T) {
	c, _ := fixed(t)
	want := "2024-03-01T09:30:00.000000+08:00"

	inserted := c.EncodeForWrite(map[string]any{"content": "x"}, false)
	if inserted[FieldCreatedTime] != want || inserted[FieldUpdatedTime] != want {
		t.Errorf("insert timestamps = %v / %v, want %s", inserted[FieldCreatedTime], inserted[FieldUpdatedTime], want)
	}

	kept := c.EncodeForWrite(map[string]any{"created_time": "2020-01-01T00:00:00+08:00"}, false)
	if kept[FieldCreatedTime] != "2020-01-01T00:00:00+08:00" {
		t.Errorf("caller created_time overwritten: %v", kept[FieldCreatedTime])
	}

	updated := c.EncodeForWrite(map[string]any{"content": "y"}, true)
	if _, ok := updated[FieldCreatedTime]; ok {
		t.Error("update must not set created_time")
	}
	if updated[FieldUpdatedTime] != want {
		t.Errorf("updated_time = %v, want %s", updated[FieldUpdatedTime], want)
	}
}

func TestEncodeForWriteDoesNotMutateInput(t *testing.T) {
	c, _ := fixed(t)
	in := map[string]any{"keywords": []any{"a"}}
	c.EncodeForWrite(in, false)
	if _, ok := in["keywords"].([]any); !ok {
		t.Error("input map was mutated")
	}
	if _, ok := in[FieldUpdatedTime]; ok {
		t.Error("input map gained updated_time")
	}
}

func TestEncodeLeavesEncodedStrings(t *testing.T) {
	c, _ := fixed(t)
	out := c.EncodeForWrite(map[string]any{"keywords": `["pre"]`}, true)
	if out["keywords"] != `["pre"]` {
		t.Errorf("encoded string changed: %v", out["keywords"])
	}
}

func TestDecodeForReadLenient(t *testing.T) {
	c, _ := fixed(t)
	got := c.DecodeForRead(map[string]any{
		"keywords":       "not json",
		"reference_urls": []byte(`["https://example.com"]`),
		"content":        []byte("text"),
		"note":           nil,
	})
	if kw, ok := got["keywords"].([]string); !ok || len(kw) != 0 {
		t.Errorf("corrupt keywords = %#v, want empty list", got["keywords"])
	}
	if !reflect.DeepEqual(got["reference_urls"], []string{"https://example.com"}) {
		t.Errorf("reference_urls = %#v", got["reference_urls"])
	}
	if got["content"] != "text" {
		t.Errorf("content = %#v, want string", got["content"])
	}
	if got["note"] != nil {
		t.Errorf("note = %#v, want nil", got["note"])
	}
}

func TestKeywordPattern(t *testing.T) {
	tests := map[string]string{
		"ai":      `%"ai"%`,
		"50%_off": `%"50\%\_off"%`,
		"a<b":     `%"a<b"%`,
	}
	for kw, want := range tests {
		if got := KeywordPattern(kw); got != want {
			t.Errorf("KeywordPattern(%q) = %q, want %q", kw, got, want)
		}
	}
	if got := ContainsPattern("x_y"); got != `%x\_y%` {
		t.Errorf("ContainsPattern = %q", got)
	}
}

func TestNewClockOffset(t *testing.T) {
	_, offset := NewClock(-5).Now().Zone()
	if offset != -5*3600 {
		t.Errorf("offset = %d, want %d", offset, -5*3600)
	}
}

func TestDecodeForReadTimes(t *testing.T) {
	c, _ := fixed(t)
	for _, text := range []string{
		"2024-03-01T09:30:00.000000+08:00",
		"2024-01-01T00:00:00.000000Z",
		"2024-03-01T09:30:00.000120-05:00",
	} {
		parsed, err := time.Parse(TimestampLayout, text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		got := c.DecodeForRead(map[string]any{"created_time": parsed})
		if got["created_time"] != text {
			t.Errorf("created_time = %v, want %s", got["created_time"], text)
		}
	}
}

func TestTimestampSubSecond(t *testing.T) {
	c, clk := fixed(t)
	first := c.Timestamp()
	clk.T = clk.T.Add(1500 * time.Microsecond)
	second := c.Timestamp()

	if first == second {
		t.Fatalf("timestamps %s and %s should differ", first, second)
	}
	if second != "2024-03-01T09:30:00.001500+08:00" {
		t.Errorf("second = %s", second)
	}
	if len(first) != len(second) || first > second {
		t.Errorf("stored text should be fixed width and ordered: %s, %s", first, second)
	}
}
