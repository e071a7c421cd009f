package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/instrumentation"
)

// HTTPServer hosts the MCP streamable HTTP transport on /mcp together
// with the health endpoints. The transport itself is unauthenticated;
// mailbox access is gated by the backend proxy's own session, exactly
// as it is for the stdio transport.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	health     *HealthChecker
	metrics    *instrumentation.Metrics
	httpServer *http.Server
}

// NewHTTPServer creates an HTTP server for the given MCP server.
// health and metrics may be nil; the corresponding endpoints and
// instrumentation are simply omitted.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, health *HealthChecker, metrics *instrumentation.Metrics) *HTTPServer {
	return &HTTPServer{
		mcpServer: mcpServer,
		health:    health,
		metrics:   metrics,
	}
}

// Handler builds the HTTP routing for the server. Exposed separately
// from Start so tests can drive the mux without binding a port.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)

	var mcpHandler http.Handler = streamable
	if s.metrics != nil {
		mcpHandler = s.withRequestMetrics("/mcp", mcpHandler)
	}
	mux.Handle("/mcp", mcpHandler)

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	return mux
}

// Start starts the HTTP server in a blocking manner.
func (s *HTTPServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting streamable HTTP server", "addr", addr, "endpoint", "/mcp")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// withRequestMetrics records request counts and durations for the MCP
// endpoint and tracks in-flight requests through the session gauge,
// which for this transport is what an active session is.
func (s *HTTPServer) withRequestMetrics(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		s.metrics.IncrementActiveSessions(r.Context())
		defer s.metrics.DecrementActiveSessions(r.Context())

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by the wrapped
// handler. Flush is forwarded so streaming responses keep working
// behind the wrapper.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
