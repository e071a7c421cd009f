package auth_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
)

// RegisterAuthTools registers backend session tools with the MCP server
func RegisterAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Auth status tool
	statusTool := mcp.NewTool("auth_status",
		mcp.WithDescription("Check the backend's mail session: whether credentials are configured and whether a user is signed in."),
	)

	s.AddTool(statusTool, common.InstrumentedToolHandlerWithService(
		"auth_status", instrumentation.ServiceBackend, instrumentation.OperationAuthStatus, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthStatus(ctx, request, sc)
		}))

	// Login URL tool
	loginURLTool := mcp.NewTool("auth_login_url",
		mcp.WithDescription("Get the URL that starts the backend's sign-in flow. The session is established in the backend; this process never sees mail credentials."),
	)

	s.AddTool(loginURLTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLoginURL(ctx, request, sc)
	})

	// Logout tool (ends the backend session)
	if !readOnly {
		logoutTool := mcp.NewTool("auth_logout",
			mcp.WithDescription("End the backend's mail session."),
		)

		s.AddTool(logoutTool, common.InstrumentedToolHandlerWithService(
			"auth_logout", instrumentation.ServiceBackend, instrumentation.OperationLogout, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleLogout(ctx, request, sc)
			}))
	}

	return nil
}

func handleAuthStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client := sc.BackendClient()

	status, err := client.AuthStatus(ctx)
	if err != nil {
		if backend.IsOffline(err) {
			return mcp.NewToolResultText("[offline] Backend unreachable, authentication state unknown."), nil
		}
		// A reachable backend answering outside 2xx is configured but
		// broken, not signed out
		return mcp.NewToolResultText(fmt.Sprintf("Backend reachable but failing: %v\nMail credentials may be misconfigured on the backend.", err)), nil
	}

	// Cache the session identity for audit labelling
	if status.IsAuthenticated && status.UserEmail != "" {
		sc.SetUserEmail(status.UserEmail)
	}

	if !status.IsConfigured {
		return mcp.NewToolResultText("Backend has no mail credentials configured."), nil
	}
	if !status.IsAuthenticated {
		return mcp.NewToolResultText("Not signed in. Use auth_login_url to start the sign-in flow."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Signed in as %s.", status.UserEmail)), nil
}

func handleLoginURL(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client := sc.BackendClient()

	result := fmt.Sprintf(`To sign in to the mail backend:

1. Visit this URL in your browser:
   %s

2. Complete the sign-in flow with your mail provider

3. Call auth_status to confirm the session`, client.LoginURL())

	return mcp.NewToolResultText(result), nil
}

func handleLogout(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client := sc.BackendClient()

	if err := client.Logout(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to log out: %v", err)), nil
	}

	sc.SetUserEmail("")
	return mcp.NewToolResultText("Logged out."), nil
}
