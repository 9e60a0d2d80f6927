// Package httpapi serves the MCP endpoint over streamable HTTP together with
// a health check and OAuth protected-resource metadata.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/config"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
)

const (
	MCPPath              = "/mcp"
	HealthPath           = "/health"
	ProtectedResourceURI = "/.well-known/oauth-protected-resource"

	RequestIDHeader = "X-Request-ID"

	shutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg config.Config
	log *logger.Logger
	mux *http.ServeMux
}

func New(cfg config.Config, mcpServer *mcp.Server, log *logger.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
		mux: http.NewServeMux(),
	}

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	s.mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	if cfg.ResourceURL != "" {
		s.mux.HandleFunc("GET "+ProtectedResourceURI, s.handleProtectedResource)
	}
	s.mux.Handle(MCPPath, s.requireBearer(mcpHandler))
	return s
}

// Handler is the full middleware chain, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.loggingMiddleware(s.mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("http server listening", "addr", addr, "auth", s.cfg.BearerToken != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("http server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleProtectedResource(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"resource":                 s.cfg.ResourceURL,
		"bearer_methods_supported": []string{"header"},
	}
	if s.cfg.AuthServerURL != "" {
		body["authorization_servers"] = []string{s.cfg.AuthServerURL}
	}
	writeJSON(w, http.StatusOK, body)
}

// requireBearer rejects requests without the configured token. With no token
// configured every request passes.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	if s.cfg.BearerToken == "" {
		return next
	}
	want := []byte(s.cfg.BearerToken)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			challenge := `Bearer realm="profile-mcp"`
			if s.cfg.ResourceURL != "" {
				challenge += fmt.Sprintf(`, resource_metadata="%s%s"`, strings.TrimRight(s.cfg.ResourceURL, "/"), ProtectedResourceURI)
			}
			w.Header().Set("WWW-Authenticate", challenge)
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_token",
				"error_description": "missing or invalid bearer token",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streamed MCP responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("http request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
