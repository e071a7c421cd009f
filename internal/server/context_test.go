package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/instrumentation"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BackendURL:    "http://localhost:8080",
		OpenAIBaseURL: analysis.DefaultBaseURL,
		OpenAIModel:   analysis.DefaultModel,
		CachePath:     filepath.Join(t.TempDir(), "emails.json"),
	}
}

func TestNewServerContext(t *testing.T) {
	conf := testConfig(t)

	sc, err := NewServerContext(context.Background(), conf)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Config() != conf {
		t.Error("Config() did not return the provided configuration")
	}
	if sc.Context() == nil {
		t.Error("Context() returned nil")
	}
	if sc.IsShutdown() {
		t.Error("new context reports shutdown")
	}
}

func TestNewServerContext_NilConfig(t *testing.T) {
	if _, err := NewServerContext(context.Background(), nil); err == nil {
		t.Error("NewServerContext(nil config) expected error, got nil")
	}
}

func TestBackendClient_CreatedOnceAndCached(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	first := sc.BackendClient()
	if first == nil {
		t.Fatal("BackendClient() returned nil")
	}
	if second := sc.BackendClient(); second != first {
		t.Error("BackendClient() created a second client instead of reusing the first")
	}

	replacement := backend.NewClient("http://other:8080", nil)
	sc.SetBackendClient(replacement)
	if sc.BackendClient() != replacement {
		t.Error("SetBackendClient() did not take effect")
	}
}

func TestAnalysisService_MissingKey(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if _, err := sc.AnalysisService(); !errors.Is(err, analysis.ErrMissingAPIKey) {
		t.Errorf("AnalysisService() error = %v, want ErrMissingAPIKey", err)
	}

	// A failed attempt must not poison later ones once a service is set.
	svc, err := analysis.NewService(nil, "test-key", "", "")
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	sc.SetAnalysisService(svc)

	got, err := sc.AnalysisService()
	if err != nil {
		t.Fatalf("AnalysisService() after set error = %v", err)
	}
	if got != svc {
		t.Error("AnalysisService() did not return the injected service")
	}
}

func TestAnalysisService_CreatedOnceAndCached(t *testing.T) {
	conf := testConfig(t)
	conf.OpenAIAPIKey = "test-key"

	sc, err := NewServerContext(context.Background(), conf)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	first, err := sc.AnalysisService()
	if err != nil {
		t.Fatalf("AnalysisService() error = %v", err)
	}
	second, err := sc.AnalysisService()
	if err != nil {
		t.Fatalf("AnalysisService() second call error = %v", err)
	}
	if first != second {
		t.Error("AnalysisService() created a second service instead of reusing the first")
	}
}

func TestStore_UsesConfiguredPath(t *testing.T) {
	conf := testConfig(t)

	sc, err := NewServerContext(context.Background(), conf)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	s := sc.Store()
	if s == nil {
		t.Fatal("Store() returned nil")
	}
	if s.Path() != conf.CachePath {
		t.Errorf("Store().Path() = %q, want %q", s.Path(), conf.CachePath)
	}
	if sc.Store() != s {
		t.Error("Store() created a second store instead of reusing the first")
	}
}

func TestMetricsAndAuditAccessors(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Metrics() != nil {
		t.Error("Metrics() non-nil before SetMetrics")
	}
	if sc.AuditLogger() != nil {
		t.Error("AuditLogger() non-nil before SetAuditLogger")
	}

	provider := createDisabledProvider(t)
	sc.SetMetrics(provider.Metrics())
	if sc.Metrics() == nil {
		t.Error("Metrics() nil after SetMetrics")
	}

	audit := instrumentation.NewAuditLogger(nil)
	sc.SetAuditLogger(audit)
	if sc.AuditLogger() != audit {
		t.Error("AuditLogger() did not return the set logger")
	}
}

func TestUserEmailCaching(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.UserEmail() != "" {
		t.Errorf("UserEmail() = %q before any auth, want empty", sc.UserEmail())
	}

	sc.SetUserEmail("jane@example.com")
	if sc.UserEmail() != "jane@example.com" {
		t.Errorf("UserEmail() = %q, want jane@example.com", sc.UserEmail())
	}
}

func TestShutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("server context not cancelled after Shutdown()")
	}

	// Second shutdown is a no-op.
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}
