// Package backend provides the client for the backend mail proxy.
//
// The proxy fronts the user's mailbox: it owns the OAuth session with
// the mail provider and exposes a small REST contract that this
// package wraps:
//
//   - GET  /auth/status  session and configuration probe
//   - GET  /auth         begin the login flow (redirect; see LoginURL)
//   - POST /auth/logout  end the session
//   - GET  /emails       the proxy's cached message list
//   - POST /sync?max=N   refresh from the mail provider
//   - GET  /search?q=&max=N  query messages
//
// All message-returning endpoints answer with a {messages: [...]}
// envelope of raw records that callers feed to triage.NormalizeAll.
//
// # Error Taxonomy
//
// Transport failures surface as *ConnectivityError (check with
// IsOffline); a reachable proxy answering outside 2xx surfaces as
// *StatusError. Read-only call sites degrade to cached data on
// ConnectivityError, while mutating operations propagate both kinds.
package backend
