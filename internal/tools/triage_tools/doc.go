// Package triage_tools provides MCP (Model Context Protocol) tools for the
// triaged inbox.
//
// This package exposes the triage workflow through MCP tools that can be
// called by AI agents or other MCP clients:
//
// Inbox view:
//   - inbox_list: the thread view, most urgent first, offline-tolerant
//   - inbox_search: backend search as a transient view
//   - inbox_sync: backend sync merged into the cached working set
//
// AI analysis:
//   - inbox_analyze: batch triage (summary, priority, urgency, category,
//     action items, sentiment) applied to the working set
//   - inbox_draft_reply: reply draft for a single cached message
//
// Cache:
//   - inbox_clear_cache: delete the cached working set
//
// Tools that mutate the working set (inbox_sync, inbox_analyze,
// inbox_clear_cache) are only registered when the server runs with write
// operations enabled. All tools reach mail through the backend proxy held
// by the server context; no mail credentials live in this process.
package triage_tools
