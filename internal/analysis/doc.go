// Package analysis derives triage annotations from email content using
// an OpenAI-compatible chat completion API.
//
// AnalyzeBatch covers a whole working set in one request: bodies are
// stripped of markup and truncated before they go on the wire, and the
// response is constrained by a strict JSON schema so every analysis
// carries the documented priority, category, and sentiment values.
// DraftReply produces a plain-text reply suggestion for one email.
//
// # Error Taxonomy
//
// A missing key fails as ErrMissingAPIKey before any network call. A
// service that rejects the configured key (401 or 403) fails as
// *AuthError, which tells the operator to rotate OPENAI_API_KEY. Every
// other failure is a *ServiceError. Batch results are all-or-nothing;
// no call ever returns a partially filled map alongside an error.
package analysis
