package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/config"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	s := New(cfg, mcpServer, logger.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, config.Default())

	resp, err := http.Get(ts.URL + HealthPath)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t, config.Default())

	req, _ := http.NewRequest(http.MethodGet, ts.URL+HealthPath, nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestProtectedResourceMetadata(t *testing.T) {
	t.Run("disabled without resource url", func(t *testing.T) {
		ts := newTestServer(t, config.Default())
		resp, err := http.Get(ts.URL + ProtectedResourceURI)
		if err != nil {
			t.Fatalf("GET metadata: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("served with resource url", func(t *testing.T) {
		cfg := config.Default()
		cfg.ResourceURL = "https://profile.example.com"
		cfg.AuthServerURL = "https://auth.example.com"
		ts := newTestServer(t, cfg)

		resp, err := http.Get(ts.URL + ProtectedResourceURI)
		if err != nil {
			t.Fatalf("GET metadata: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Resource             string   `json:"resource"`
			AuthorizationServers []string `json:"authorization_servers"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Resource != cfg.ResourceURL {
			t.Errorf("resource = %q", body.Resource)
		}
		if len(body.AuthorizationServers) != 1 || body.AuthorizationServers[0] != cfg.AuthServerURL {
			t.Errorf("authorization_servers = %v", body.AuthorizationServers)
		}
	})
}

func TestBearerAuth(t *testing.T) {
	cfg := config.Default()
	cfg.BearerToken = "s3cret"
	cfg.ResourceURL = "https://profile.example.com/"
	ts := newTestServer(t, cfg)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic s3cret"},
		{"wrong token", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, ts.URL+MCPPath, strings.NewReader("{}"))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
			challenge := resp.Header.Get("WWW-Authenticate")
			if !strings.Contains(challenge, `resource_metadata="https://profile.example.com/.well-known/oauth-protected-resource"`) {
				t.Errorf("WWW-Authenticate = %q", challenge)
			}
		})
	}

	t.Run("valid token passes through", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, ts.URL+MCPPath, strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer s3cret")
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			t.Error("valid token was rejected")
		}
	})
}

func TestHealthSkipsAuth(t *testing.T) {
	cfg := config.Default()
	cfg.BearerToken = "s3cret"
	ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + HealthPath)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
