// Package auth_tools provides MCP tools for the backend's mail session.
//
//   - auth_status: configuration and sign-in state
//   - auth_login_url: the URL that starts the backend's sign-in flow
//   - auth_logout: end the session (write operations only)
//
// The OAuth handshake itself lives entirely in the backend proxy. These
// tools only observe and end the session.
package auth_tools
