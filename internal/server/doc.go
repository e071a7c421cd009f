// Package server provides the MCP server context and the HTTP surfaces
// of the inboxtriage server.
//
// # Key Components
//
// ServerContext carries configuration and lazily constructed
// collaborator clients (backend proxy, analysis service, working-set
// cache) plus the metrics recorder and audit logger that instrumented
// tool handlers report through. Lazy construction means a missing
// OPENAI_API_KEY or an unreachable backend fails the first operation
// that needs it, not server startup.
//
// HTTPServer hosts the MCP streamable HTTP transport on /mcp with
// request metrics and the health endpoints. HealthChecker serves
// /healthz, /readyz, and /healthz/detailed for Kubernetes probes.
// MetricsServer exposes /metrics for Prometheus scraping on its own
// port so operational data never shares the MCP listener.
//
// The MCP transport carries no authentication of its own. All mailbox
// access flows through the backend proxy, which owns the user session;
// a server reachable by an untrusted network should sit behind an
// authenticating reverse proxy.
package server
