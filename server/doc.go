// Package server implements the authorization code flow with PKCE: it
// validates authorization requests, mints one-time grants, and redeems them
// for signed access tokens.
//
// The Server is transport-agnostic. HTTP parsing, redirects, and status
// codes live in the root package's Handler; this package works on parsed
// request values and returns typed flow errors carrying the OAuth error
// code to surface.
//
// The flow's state machine is minimal: a grant is Pending from issuance
// until it is either Redeemed (removed by the exchange) or Expired (removed
// lazily). Access tokens are stateless JWTs and are never stored.
package server
