package cmd

import (
	"context"
	"path/filepath"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/server"
)

func TestRegisterAllTools(t *testing.T) {
	tests := []struct {
		name        string
		readOnly    bool
		wantPresent []string
		wantAbsent  []string
	}{
		{
			name:     "read-write registers everything",
			readOnly: false,
			wantPresent: []string{
				"inbox_list", "inbox_search", "inbox_sync",
				"inbox_analyze", "inbox_draft_reply", "inbox_clear_cache",
				"auth_status", "auth_login_url", "auth_logout",
			},
		},
		{
			name:     "read-only hides mutating tools",
			readOnly: true,
			wantPresent: []string{
				"inbox_list", "inbox_search", "inbox_draft_reply",
				"auth_status", "auth_login_url",
			},
			wantAbsent: []string{
				"inbox_sync", "inbox_analyze", "inbox_clear_cache", "auth_logout",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &config.Config{
				BackendURL:    config.DefaultBackendURL,
				OpenAIBaseURL: analysis.DefaultBaseURL,
				OpenAIModel:   analysis.DefaultModel,
				CachePath:     filepath.Join(t.TempDir(), "emails.json"),
			}

			sc, err := server.NewServerContext(context.Background(), conf)
			if err != nil {
				t.Fatalf("NewServerContext() error = %v", err)
			}
			t.Cleanup(func() { _ = sc.Shutdown() })

			mcpSrv := mcpserver.NewMCPServer("test", "0.0.0",
				mcpserver.WithToolCapabilities(true),
				mcpserver.WithResourceCapabilities(false, false),
			)

			if err := registerAllTools(mcpSrv, sc, tt.readOnly); err != nil {
				t.Fatalf("registerAllTools() error = %v", err)
			}

			registered := make(map[string]bool)
			for _, serverTool := range mcpSrv.ListTools() {
				registered[serverTool.Tool.Name] = true
			}

			for _, name := range tt.wantPresent {
				if !registered[name] {
					t.Errorf("tool %s not registered", name)
				}
			}
			for _, name := range tt.wantAbsent {
				if registered[name] {
					t.Errorf("tool %s registered in read-only mode", name)
				}
			}
		})
	}
}
