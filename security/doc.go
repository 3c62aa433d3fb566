// Package security provides the security primitives used across mcp-gate:
// cryptographically secure random string generation, PKCE challenge
// verification, per-identifier rate limiting, audit logging, secure HTTP
// headers, and client IP extraction.
package security
