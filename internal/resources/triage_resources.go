package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/triage"
)

// RegisterTriageResources registers the triage state resources
// These resources expose the cached working set and the backend session
// without triggering any fetch or analysis
func RegisterTriageResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register inbox resource
	inboxResource := mcp.NewResource(
		"triage://inbox",
		"Triaged Inbox",
		mcp.WithResourceDescription("The cached working set as ordered threads, most urgent first"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(inboxResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleInboxResource(ctx, request, sc)
	})

	// Register auth status resource
	authResource := mcp.NewResource(
		"triage://auth/status",
		"Backend Session",
		mcp.WithResourceDescription("Configuration and sign-in state of the mail backend"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(authResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAuthStatusResource(ctx, request, sc)
	})

	return nil
}

// handleInboxResource returns the thread view of the cached working set.
// It reads only the local cache; inbox_list and inbox_sync are the
// operations that talk to the backend.
func handleInboxResource(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	emails, err := sc.Store().Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached working set: %w", err)
	}

	threads := triage.AssembleThreads(emails)

	inboxData := map[string]interface{}{
		"threads":      threads,
		"threadCount":  len(threads),
		"messageCount": len(emails),
	}

	jsonData, err := json.MarshalIndent(inboxData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inbox data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleAuthStatusResource returns the backend session state. An
// unreachable backend is reported as offline rather than failing the
// read, since this resource feeds initial render.
func handleAuthStatusResource(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	var statusData map[string]interface{}

	status, err := sc.BackendClient().AuthStatus(ctx)
	switch {
	case err == nil:
		if status.IsAuthenticated && status.UserEmail != "" {
			sc.SetUserEmail(status.UserEmail)
		}
		statusData = map[string]interface{}{
			"offline":         false,
			"isConfigured":    status.IsConfigured,
			"isAuthenticated": status.IsAuthenticated,
			"userEmail":       status.UserEmail,
		}
	case backend.IsOffline(err):
		statusData = map[string]interface{}{
			"offline":         true,
			"isConfigured":    false,
			"isAuthenticated": false,
			"userEmail":       "",
		}
	default:
		return nil, fmt.Errorf("failed to get auth status: %w", err)
	}

	jsonData, err := json.MarshalIndent(statusData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
