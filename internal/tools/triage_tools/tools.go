package triage_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
	"github.com/teemow/inboxtriage/internal/triage"
)

// RegisterTriageTools registers all inbox triage tools with the MCP server
func RegisterTriageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register analysis tools (inbox_analyze requires !readOnly)
	if err := RegisterAnalysisTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register analysis tools: %w", err)
	}

	// Register cache tools (inbox_clear_cache requires !readOnly)
	if err := RegisterCacheTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register cache tools: %w", err)
	}

	// List inbox tool
	listTool := mcp.NewTool("inbox_list",
		mcp.WithDescription("List the triaged inbox as threads, most urgent first. Fetches the latest messages from the backend and falls back to cached data when the backend is unreachable."),
	)

	s.AddTool(listTool, common.InstrumentedToolHandlerWithService(
		"inbox_list", instrumentation.ServiceBackend, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInboxList(ctx, request, sc)
		}))

	// Search tool
	searchTool := mcp.NewTool("inbox_search",
		mcp.WithDescription("Search mail through the backend. Results are a transient view and are not merged into the cached working set."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g., 'from:alice@example.com', 'invoice')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 50)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"inbox_search", instrumentation.ServiceBackend, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInboxSearch(ctx, request, sc)
		}))

	// Sync tool (mutates the cached working set)
	if !readOnly {
		syncTool := mcp.NewTool("inbox_sync",
			mcp.WithDescription("Trigger a mail sync on the backend and merge the result into the cached working set. Existing analyses are preserved for unchanged messages."),
			mcp.WithNumber("maxResults",
				mcp.Description("Maximum number of messages to sync (default: 50)"),
			),
		)

		s.AddTool(syncTool, common.InstrumentedToolHandlerWithService(
			"inbox_sync", instrumentation.ServiceBackend, instrumentation.OperationSync, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleInboxSync(ctx, request, sc)
			}))
	}

	return nil
}

func handleInboxList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	st := sc.Store()
	current, loadErr := st.Load()
	if loadErr != nil {
		// Cache reads feed the initial render and never fail the call
		current = nil
	}

	client := sc.BackendClient()

	offline := false
	var notes []string
	raw, err := client.ListEmails(ctx)
	switch {
	case err == nil:
		current = triage.Merge(current, triage.NormalizeAll(raw))
		if saveErr := st.Save(current); saveErr != nil {
			notes = append(notes, fmt.Sprintf("warning: failed to update cache: %v", saveErr))
		}
	case backend.IsOffline(err):
		offline = true
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch emails: %v", err)), nil
	}

	if loadErr != nil {
		notes = append(notes, fmt.Sprintf("warning: cached working set unavailable: %v", loadErr))
	}

	threads := triage.AssembleThreads(current)
	return mcp.NewToolResultText(renderThreads(threads, offline, notes)), nil
}

func handleInboxSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	maxResults := common.MaxResultsFromArgs(args, backend.DefaultMaxResults)

	client := sc.BackendClient()

	raw, err := client.Search(ctx, query, maxResults)
	if err != nil {
		if backend.IsOffline(err) {
			return mcp.NewToolResultText("[offline] Backend unreachable, no search results.\n"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search: %v", err)), nil
	}

	threads := triage.AssembleThreads(triage.NormalizeAll(raw))
	result := fmt.Sprintf("Search %q:\n\n", query)
	result += renderThreads(threads, false, nil)
	return mcp.NewToolResultText(result), nil
}

func handleInboxSync(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	maxResults := common.MaxResultsFromArgs(args, backend.DefaultMaxResults)

	client := sc.BackendClient()

	raw, err := client.Sync(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to sync: %v", err)), nil
	}

	st := sc.Store()
	current, err := st.Load()
	if err != nil {
		// A sync merges into the prior working set; if that cannot be
		// read the merge would silently discard analyses
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read cached working set: %v", err)), nil
	}

	merged := triage.Merge(current, triage.NormalizeAll(raw))
	if err := st.Save(merged); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save working set: %v", err)), nil
	}

	threads := triage.AssembleThreads(merged)
	return mcp.NewToolResultText(fmt.Sprintf("Synced %d messages into %d threads.", len(merged), len(threads))), nil
}
