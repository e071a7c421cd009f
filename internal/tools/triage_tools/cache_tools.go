package triage_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
)

// RegisterCacheTools registers working-set cache tools with the MCP server
func RegisterCacheTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	clearTool := mcp.NewTool("inbox_clear_cache",
		mcp.WithDescription("Delete the cached working set, including all analyses. The next inbox_list or inbox_sync starts from an empty state."),
	)

	s.AddTool(clearTool, common.InstrumentedToolHandler("inbox_clear_cache", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleClearCache(ctx, request, sc)
		}))

	return nil
}

func handleClearCache(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	st := sc.Store()
	if err := st.Clear(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to clear cache: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Cached working set cleared (%s).", st.Path())), nil
}
