package tools

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/storage"
)

func TestMissingFields(t *testing.T) {
	got := missingFields(map[string]any{
		"content":     "  ",
		"memory_type": "event",
		"importance":  nil,
	}, []string{"content", "memory_type", "importance", "details"})

	want := []string{"content", "importance", "details"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("missingFields = %v, want %v", got, want)
	}
}

func TestPageLimit(t *testing.T) {
	n := func(v int) *int { return &v }
	tests := []struct {
		name string
		in   *int
		want int
	}{
		{"unset", nil, DefaultQueryLimit},
		{"zero", n(0), 0},
		{"within cap", n(250), 250},
		{"over cap", n(5000), MaxQueryLimit},
		{"negative", n(-1), -1},
	}
	for _, tt := range tests {
		if got := pageLimit(tt.in); got != tt.want {
			t.Errorf("%s: pageLimit = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestContentToolNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range ContentTables {
		for _, name := range []string{c.QueryToolName(), c.SaveToolName(), c.DeleteToolName()} {
			if seen[name] {
				t.Errorf("duplicate tool name %q", name)
			}
			seen[name] = true
		}
		if !strings.Contains(c.SaveDescription(), c.Required[0]) {
			t.Errorf("%s save description omits required fields", c.Table)
		}
	}
	if !seen["query_methodologies"] || !seen["save_focus"] {
		t.Errorf("unexpected names: %v", seen)
	}
}

func TestLoggedPassesThrough(t *testing.T) {
	want := toolText("ok")
	h := Logged(logger.NewNop(), "probe", func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, any, error) {
		return want, nil, nil
	})
	res, _, err := h(context.Background(), nil, struct{}{})
	if err != nil || res != want {
		t.Errorf("Logged changed the result: %v %v", res, err)
	}

	boom := errors.New("boom")
	failing := Logged(logger.NewNop(), "probe", func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, any, error) {
		return nil, nil, boom
	})
	if _, _, err := failing(context.Background(), nil, struct{}{}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestRequireStoreReportsOpenFailure(t *testing.T) {
	h := session.New(storage.Options{})
	pt := NewPersonaTools(h)

	res, _, err := pt.GetPersona(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(res), "unavailable") {
		t.Errorf("result = %q", resultText(res))
	}
}
