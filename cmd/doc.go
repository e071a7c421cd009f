// Package cmd implements the command-line interface for inboxtriage.
//
// This package provides the following commands:
//   - inbox: Fetch the inbox and print the triaged thread view
//   - sync: Trigger a mailbox sync on the backend and merge the result
//   - search: Query the mailbox through the backend
//   - analyze: Run AI analysis over the cached working set
//   - draft: Generate a reply draft for one message
//   - auth: Inspect and control the backend mail session
//   - cache: Manage the cached working set file
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The inbox command is the default command when no subcommand is specified.
package cmd
