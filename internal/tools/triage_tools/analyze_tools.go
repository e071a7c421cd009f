package triage_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/server"
	"github.com/teemow/inboxtriage/internal/tools/common"
	"github.com/teemow/inboxtriage/internal/triage"
)

// RegisterAnalysisTools registers the AI analysis tools with the MCP server
func RegisterAnalysisTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Draft reply tool (generates text, does not touch the working set)
	draftTool := mcp.NewTool("inbox_draft_reply",
		mcp.WithDescription("Draft a reply to a cached message using the AI service. Returns the reply body only; nothing is sent."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The id of the message to reply to"),
		),
	)

	s.AddTool(draftTool, common.InstrumentedToolHandlerWithService(
		"inbox_draft_reply", instrumentation.ServiceAnalysis, instrumentation.OperationDraft, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDraftReply(ctx, request, sc)
		}))

	// Analyze tool (writes analyses back into the working set)
	if !readOnly {
		analyzeTool := mcp.NewTool("inbox_analyze",
			mcp.WithDescription("Run AI triage over cached messages: summary, priority, urgency score, category, action items, sentiment. Defaults to the latest message of every thread."),
			mcp.WithString("ids",
				mcp.Description("Message id (string) or array of message ids to analyze. Omit to analyze the latest message of every thread."),
			),
		)

		s.AddTool(analyzeTool, common.InstrumentedToolHandlerWithService(
			"inbox_analyze", instrumentation.ServiceAnalysis, instrumentation.OperationAnalyze, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAnalyze(ctx, request, sc)
			}))
	}

	return nil
}

func handleAnalyze(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	st := sc.Store()
	current, err := st.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read cached working set: %v", err)), nil
	}
	if len(current) == 0 {
		return mcp.NewToolResultText("Working set is empty. Run inbox_sync or inbox_list first."), nil
	}

	// Analyze explicit ids when given, the latest message of every
	// thread otherwise
	var candidates []triage.Email
	if idsVal, ok := args["ids"]; ok && idsVal != nil {
		ids, err := common.ParseIDList(idsVal, "ids")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		byID := lo.KeyBy(current, func(e triage.Email) string { return e.ID })
		for _, id := range ids {
			email, found := byID[id]
			if !found {
				return mcp.NewToolResultError(fmt.Sprintf("unknown email id: %s", id)), nil
			}
			candidates = append(candidates, email)
		}
	} else {
		candidates = triage.LatestPerThread(current)
	}

	svc, err := sc.AnalysisService()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Analysis service unavailable: %v", err)), nil
	}

	results, err := svc.AnalyzeBatch(ctx, candidates)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze: %v", err)), nil
	}

	updated := triage.ApplyAnalysis(current, results)
	if err := st.Save(updated); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save working set: %v", err)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.AddEmailsAnalyzed(ctx, len(results))
	}

	result := fmt.Sprintf("Analyzed %d of %d message(s):\n\n", len(results), len(candidates))
	for _, email := range candidates {
		analysis, ok := results[email.ID]
		if !ok {
			continue
		}
		result += fmt.Sprintf("%s — %s\n", email.ID, email.Subject)
		result += fmt.Sprintf("   [%s] urgency %d, %s, %s\n", analysis.Priority, analysis.UrgencyScore, analysis.Category, analysis.Sentiment)
		result += fmt.Sprintf("   %s\n", analysis.Summary)
		for _, item := range analysis.ActionItems {
			result += fmt.Sprintf("   - %s\n", item)
		}
		result += "\n"
	}

	if omitted := len(candidates) - len(results); omitted > 0 {
		result += fmt.Sprintf("%d message(s) were omitted by the model; their prior analysis is unchanged.\n", omitted)
	}

	return mcp.NewToolResultText(result), nil
}

func handleDraftReply(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	st := sc.Store()
	current, err := st.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read cached working set: %v", err)), nil
	}

	email, found := lo.Find(current, func(e triage.Email) bool { return e.ID == id })
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("unknown email id: %s", id)), nil
	}

	svc, err := sc.AnalysisService()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Analysis service unavailable: %v", err)), nil
	}

	draft, err := svc.DraftReply(ctx, email)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to draft reply: %v", err)), nil
	}

	result := fmt.Sprintf("Draft reply to %s <%s> re: %s\n\n%s\n", email.SenderName, email.Sender, email.Subject, draft)
	return mcp.NewToolResultText(result), nil
}
