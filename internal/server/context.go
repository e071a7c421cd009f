package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/store"
)

// ServerContext holds the shared state of the MCP server: configuration,
// lazily created collaborator clients, and the observability hooks the
// tool handlers record through.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	conf *config.Config

	backendClient *backend.Client
	analysisSvc   *analysis.Service
	cache         *store.Store

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	// userEmail caches the proxy-reported identity for audit labeling
	userEmail string

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. Collaborator clients
// are not constructed here; each is created on first use so a missing
// API key or unreachable backend only fails the operations that need it.
func NewServerContext(ctx context.Context, conf *config.Config) (*ServerContext, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		conf:   conf,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration
func (sc *ServerContext) Config() *config.Config {
	return sc.conf
}

// BackendClient returns the mail proxy client, creating it on first use
func (sc *ServerContext) BackendClient() *backend.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.backendClient == nil {
		sc.backendClient = backend.NewClient(sc.conf.BackendURL, nil)
	}
	return sc.backendClient
}

// SetBackendClient sets the mail proxy client
func (sc *ServerContext) SetBackendClient(client *backend.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.backendClient = client
}

// AnalysisService returns the analysis client, creating it on first use.
// Construction fails with analysis.ErrMissingAPIKey until a key is
// configured, so every analysis tool surfaces the same remediation.
func (sc *ServerContext) AnalysisService() (*analysis.Service, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.analysisSvc != nil {
		return sc.analysisSvc, nil
	}

	svc, err := analysis.NewService(slog.Default(), sc.conf.OpenAIAPIKey, sc.conf.OpenAIBaseURL, sc.conf.OpenAIModel)
	if err != nil {
		return nil, err
	}

	sc.analysisSvc = svc
	return svc, nil
}

// SetAnalysisService sets the analysis client
func (sc *ServerContext) SetAnalysisService(svc *analysis.Service) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.analysisSvc = svc
}

// Store returns the working-set cache, creating it on first use
func (sc *ServerContext) Store() *store.Store {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.cache == nil {
		sc.cache = store.New(sc.conf.CachePath, logging.NewSlogAdapter(slog.Default()))
	}
	return sc.cache
}

// SetStore sets the working-set cache
func (sc *ServerContext) SetStore(s *store.Store) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache = s
}

// Metrics returns the metrics recorder, nil when none was set
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, nil when none was set
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers
func (sc *ServerContext) SetAuditLogger(a *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = a
}

// UserEmail returns the cached proxy identity, empty when unknown
func (sc *ServerContext) UserEmail() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.userEmail
}

// SetUserEmail caches the proxy-reported identity. Handlers set it after
// a successful auth status call so audit records carry the user domain.
func (sc *ServerContext) SetUserEmail(email string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.userEmail = email
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
