package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/storage"
)

// Handler is the shape of every tool handler in this package.
type Handler[In any] func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, any, error)

// Logged wraps h so each call is logged with a request id and its duration.
func Logged[In any](log *logger.Logger, name string, h Handler[In]) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, any, error) {
		reqLog := log.With("tool", name, "request_id", uuid.NewString())
		start := time.Now()
		res, out, err := h(ctx, req, input)
		switch {
		case err != nil:
			reqLog.Error("tool call failed", "duration", time.Since(start), "error", err)
		case res != nil && res.IsError:
			reqLog.Warn("tool call rejected", "duration", time.Since(start), "error", resultText(res))
		default:
			reqLog.Debug("tool call", "duration", time.Since(start))
		}
		return res, out, err
	}
}

// base gives every tool group access to the lazily opened store.
type base struct {
	Handle *session.Handle
}

func (b base) requireStore(ctx context.Context) (*storage.Store, *mcp.CallToolResult) {
	s, err := b.Handle.Store(ctx)
	if err != nil {
		return nil, toolError("Profile database unavailable: %v", err)
	}
	return s, nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func resultText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
