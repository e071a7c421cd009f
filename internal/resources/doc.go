// Package resources provides MCP resources for exposing triage state.
// Resources are read-only data sources that MCP clients can fetch:
// the cached working set as ordered threads and the backend session
// state. Reads never trigger a backend fetch or an analysis call.
package resources
